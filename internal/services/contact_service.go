package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
)

type contactService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewContactService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger) ContactService {
	return &contactService{repo: repo, eventPublisher: eventPublisher, logger: logger}
}

// Submit stores a contact inquiry. Validation is deliberately loose: the
// required fields must be non-blank and the email needs only a plausible
// shape.
func (s *contactService) Submit(ctx context.Context, req *ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || subject == "" || message == "" {
		return NewBusinessRuleError("contact.required", "all required fields must be filled")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return NewBusinessRuleError("contact.email", "invalid email address")
	}
	if len(name) > 120 || len(email) > 120 || len(subject) > 200 || len(message) > 5000 {
		return NewBusinessRuleError("contact.length", "field exceeds maximum length")
	}

	submission := &models.ContactSubmission{
		Name:    name,
		Email:   email,
		Phone:   optionalString(req.Phone),
		Subject: subject,
		Message: message,
	}
	if err := s.repo.Contact().Create(ctx, submission); err != nil {
		return err
	}

	event := events.NewEvent(events.EventContactSubmitted, events.ContactSubmittedEvent{
		SubmissionID: submission.ID,
		Email:        submission.Email,
		Subject:      submission.Subject,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicContact, event); err != nil {
		s.logger.Warn("failed to publish contact event", "submission_id", submission.ID, "error", err)
	}

	s.logger.Info("contact submission stored", "submission_id", submission.ID)
	return nil
}
