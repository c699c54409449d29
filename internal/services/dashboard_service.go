package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/caredesk/appointment-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger, now: time.Now}
}

func (s *dashboardService) PatientDashboard(ctx context.Context, patientID uint) (*PatientDashboardResponse, error) {
	day := today(s.now)

	upcoming, err := s.repo.Appointment().ListUpcomingByPatient(ctx, patientID, day)
	if err != nil {
		return nil, err
	}
	past, err := s.repo.Appointment().ListPastByPatient(ctx, patientID, day)
	if err != nil {
		return nil, err
	}

	return &PatientDashboardResponse{
		Upcoming: toAppointmentResponses(upcoming),
		Past:     toAppointmentResponses(past),
	}, nil
}

func (s *dashboardService) DoctorDashboard(ctx context.Context, userID uint) (*DoctorDashboardResponse, error) {
	doctor, err := s.repo.Doctor().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	appointments, err := s.repo.Appointment().ListActiveByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	day := today(s.now)
	weekStart, weekEnd := weekBounds(day)
	monthStart, monthEnd := monthBounds(day)

	countWeek, err := s.repo.Appointment().CountActiveByDoctorBetween(ctx, doctor.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	countMonth, err := s.repo.Appointment().CountActiveByDoctorBetween(ctx, doctor.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &DoctorDashboardResponse{
		Appointments: toAppointmentResponses(appointments),
		CountWeek:    countWeek,
		CountMonth:   countMonth,
	}, nil
}

// weekBounds returns the Monday and Sunday of the week containing day.
func weekBounds(day time.Time) (time.Time, time.Time) {
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// monthBounds returns the first and last calendar day of day's month.
func monthBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 1, -1)
}
