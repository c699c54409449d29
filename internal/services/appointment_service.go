package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/validator"
)

type appointmentService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	now            func() time.Time
}

func NewAppointmentService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AppointmentService {
	return &appointmentService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		now:            time.Now,
	}
}

func (s *appointmentService) get(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	apt, err := s.repo.Appointment().GetByID(ctx, appointmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

// actorDoctorID resolves the actor's doctor profile id, or a permission
// error when the actor has none.
func (s *appointmentService) actorDoctorID(ctx context.Context, actor *models.User, action string) (uint, error) {
	doctor, err := s.repo.Doctor().GetByUserID(ctx, actor.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, NewPermissionError(action, "no doctor profile")
		}
		return 0, err
	}
	return doctor.ID, nil
}

// Cancel releases an active appointment's slot. The owning patient and the
// assigned doctor may cancel; terminal appointments are rejected without
// changing state.
func (s *appointmentService) Cancel(ctx context.Context, actor *models.User, appointmentID uint) error {
	apt, err := s.get(ctx, appointmentID)
	if err != nil {
		return err
	}

	switch {
	case actor.IsPatient():
		if apt.PatientID != actor.ID {
			return NewPermissionError("cancel", "not your appointment")
		}
	case actor.IsDoctor():
		doctorID, err := s.actorDoctorID(ctx, actor, "cancel")
		if err != nil {
			return err
		}
		if apt.DoctorID != doctorID {
			return NewPermissionError("cancel", "not on your schedule")
		}
	default:
		return NewPermissionError("cancel", "role not allowed")
	}

	if apt.Status.IsTerminal() {
		return ErrCannotCancel
	}

	apt.Status = models.StatusCancelled
	apt.UpdatedAt = s.now().UTC()
	if err := s.repo.Appointment().Update(ctx, apt); err != nil {
		return err
	}

	s.publishLifecycleEvent(ctx, events.EventAppointmentCancelled, apt)
	s.logger.Info("appointment cancelled", "appointment_id", apt.ID, "by_user", actor.ID)
	return nil
}

// Complete marks a visit as done. Only the assigned doctor may complete, and
// terminal appointments are rejected.
func (s *appointmentService) Complete(ctx context.Context, actor *models.User, appointmentID uint) error {
	apt, err := s.get(ctx, appointmentID)
	if err != nil {
		return err
	}

	doctorID, err := s.actorDoctorID(ctx, actor, "complete")
	if err != nil {
		return err
	}
	if apt.DoctorID != doctorID {
		return NewPermissionError("complete", "not on your schedule")
	}

	if apt.Status.IsTerminal() {
		return ErrCannotComplete
	}

	apt.Status = models.StatusCompleted
	apt.UpdatedAt = s.now().UTC()
	if err := s.repo.Appointment().Update(ctx, apt); err != nil {
		return err
	}

	s.publishLifecycleEvent(ctx, events.EventAppointmentCompleted, apt)
	s.logger.Info("appointment completed", "appointment_id", apt.ID, "doctor_id", doctorID)
	return nil
}

func (s *appointmentService) GetNotes(ctx context.Context, actor *models.User, appointmentID uint) (*AppointmentResponse, error) {
	apt, err := s.get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	doctorID, err := s.actorDoctorID(ctx, actor, "read notes")
	if err != nil {
		return nil, err
	}
	if apt.DoctorID != doctorID {
		return nil, NewPermissionError("read notes", "not on your schedule")
	}

	resp := toAppointmentResponse(apt)
	return &resp, nil
}

// UpdateNotes replaces the visit notes. An empty submission clears them.
func (s *appointmentService) UpdateNotes(ctx context.Context, actor *models.User, appointmentID uint, req *NotesRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	apt, err := s.get(ctx, appointmentID)
	if err != nil {
		return err
	}

	doctorID, err := s.actorDoctorID(ctx, actor, "update notes")
	if err != nil {
		return err
	}
	if apt.DoctorID != doctorID {
		return NewPermissionError("update notes", "not on your schedule")
	}

	apt.Notes = optionalString(req.Notes)
	apt.UpdatedAt = s.now().UTC()
	if err := s.repo.Appointment().Update(ctx, apt); err != nil {
		return err
	}

	s.logger.Info("appointment notes updated", "appointment_id", apt.ID, "doctor_id", doctorID)
	return nil
}

func (s *appointmentService) publishLifecycleEvent(ctx context.Context, eventType string, apt *models.Appointment) {
	event := events.NewEvent(eventType, events.AppointmentEvent{
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		Date:          apt.DateString(),
		Time:          apt.AppointmentTime,
		Status:        string(apt.Status),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicAppointments, event); err != nil {
		s.logger.Warn("failed to publish lifecycle event",
			"appointment_id", apt.ID, "event_type", eventType, "error", err)
	}
}
