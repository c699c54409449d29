package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// Source identifies this service in published event envelopes.
	Source = "appointment-service"

	// EventVersion is the envelope schema version.
	EventVersion = "1.0"
)

// Topics.
const (
	TopicAppointments = "appointments"
	TopicUsers        = "users"
	TopicContact      = "contact"
)

// Event types.
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventUserRegistered       = "user.registered"
	EventContactSubmitted     = "contact.submitted"
)

// Event is the envelope wrapping every published domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    Source,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to a topic. Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// AppointmentEvent is the payload for appointment lifecycle events.
type AppointmentEvent struct {
	AppointmentID uint   `json:"appointment_id"`
	PatientID     uint   `json:"patient_id"`
	DoctorID      uint   `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

// UserRegisteredEvent is the payload for new account events.
type UserRegisteredEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ContactSubmittedEvent is the payload for contact form submissions.
type ContactSubmittedEvent struct {
	SubmissionID uint   `json:"submission_id"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
}
