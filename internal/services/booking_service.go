package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/validator"
)

type bookingService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	now            func() time.Time
}

func NewBookingService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) BookingService {
	return &bookingService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		now:            time.Now,
	}
}

// openSlots derives a doctor's free slots for a date. Strictly-past dates and
// days outside the configured day list yield nothing; otherwise the configured
// slot order is preserved with taken slots removed. A doctor with no days or
// no slots configured is never available.
func openSlots(doctor *models.Doctor, date, today time.Time, taken []string) []string {
	if date.Before(today) {
		return []string{}
	}
	if !doctor.AvailableDays.Contains(weekdayToken(date)) {
		return []string{}
	}

	takenSet := make(map[string]bool, len(taken))
	for _, slot := range taken {
		takenSet[slot] = true
	}

	open := make([]string, 0, len(doctor.AvailableTimeSlots))
	for _, slot := range doctor.AvailableTimeSlots {
		if !takenSet[slot] {
			open = append(open, slot)
		}
	}
	return open
}

func (s *bookingService) AvailableSlots(ctx context.Context, doctorID uint, date string) ([]string, error) {
	// The doctor is resolved before the date is inspected, so an unknown
	// doctor reads as not-found regardless of the date parameter.
	doctor, err := s.repo.Doctor().GetByID(ctx, doctorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(date) == "" {
		return nil, ErrMissingDate
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	taken, err := s.repo.Appointment().TakenSlots(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	return openSlots(doctor, day, today(s.now), taken), nil
}

// Book validates and inserts a pending appointment. The availability and
// clash checks plus the insert run in one transaction; the partial unique
// indexes catch any booking that races past the checks, surfacing as a
// duplicated-key error mapped to the slot-taken rejection.
func (s *bookingService) Book(ctx context.Context, patientID uint, req *BookAppointmentRequest) (*AppointmentResponse, error) {
	// Trim first so a whitespace-only reason fails the required rule.
	req.ReasonForVisit = strings.TrimSpace(req.ReasonForVisit)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	day, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	appointment := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: datatypes.Date(day),
		AppointmentTime: req.Time,
		Status:          models.StatusPending,
		ReasonForVisit:  req.ReasonForVisit,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		doctor, err := tx.Doctor().GetByID(ctx, req.DoctorID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrDoctorNotFound
			}
			return err
		}

		if day.Before(today(s.now)) {
			return ErrDateInPast
		}
		if !doctor.AvailableDays.Contains(weekdayToken(day)) || !doctor.AvailableTimeSlots.Contains(req.Time) {
			return ErrSlotNotOffered
		}

		if taken, err := tx.Appointment().DoctorSlotTaken(ctx, req.DoctorID, day, req.Time); err != nil {
			return err
		} else if taken {
			return ErrSlotTaken
		}
		if taken, err := tx.Appointment().PatientSlotTaken(ctx, patientID, day, req.Time); err != nil {
			return err
		} else if taken {
			return ErrPatientSlotTaken
		}

		return tx.Appointment().Create(ctx, appointment)
	})
	if err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	event := events.NewEvent(events.EventAppointmentBooked, events.AppointmentEvent{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Date:          appointment.DateString(),
		Time:          appointment.AppointmentTime,
		Status:        string(appointment.Status),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicAppointments, event); err != nil {
		s.logger.Warn("failed to publish booking event", "appointment_id", appointment.ID, "error", err)
	}

	s.logger.Info("appointment booked",
		"appointment_id", appointment.ID,
		"patient_id", patientID,
		"doctor_id", req.DoctorID,
		"date", appointment.DateString(),
		"slot", appointment.AppointmentTime,
	)

	resp := toAppointmentResponse(appointment)
	return &resp, nil
}
