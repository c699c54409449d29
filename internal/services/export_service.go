package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/caredesk/appointment-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

var scheduleColumns = []string{"Date", "Time", "Patient", "Reason for Visit", "Status"}

// DoctorSchedule builds an .xlsx workbook listing the doctor's active
// appointments in date order.
func (s *exportService) DoctorSchedule(ctx context.Context, userID uint) ([]byte, string, error) {
	doctor, err := s.repo.Doctor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrDoctorNotFound
		}
		return nil, "", err
	}

	appointments, err := s.repo.Appointment().ListActiveByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range scheduleColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, "", err
		}
	}

	for row, apt := range appointments {
		values := []interface{}{
			apt.DateString(),
			apt.AppointmentTime,
			apt.Patient.DisplayName(),
			apt.ReasonForVisit,
			string(apt.Status),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "E", 24); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", s.now().Format("2006-01-02"))
	s.logger.Info("schedule exported", "doctor_id", doctor.ID, "appointments", len(appointments))
	return buf.Bytes(), filename, nil
}
