package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// statuses and user-facing messages.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")

	ErrMissingDate = errors.New("missing date parameter")
	ErrInvalidDate = errors.New("invalid date format")

	ErrDateInPast       = errors.New("appointment date must be in the future")
	ErrSlotNotOffered   = errors.New("selected date or time is not available for this doctor")
	ErrSlotTaken        = errors.New("time slot is no longer available")
	ErrPatientSlotTaken = errors.New("patient already has an appointment at this date and time")

	ErrCannotCancel   = errors.New("appointment cannot be cancelled")
	ErrCannotComplete = errors.New("appointment cannot be completed")
)

// PermissionError marks an action the actor is not allowed to perform on an
// existing resource.
type PermissionError struct {
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s (%s)", e.Action, e.Reason)
}

func NewPermissionError(action, reason string) *PermissionError {
	return &PermissionError{Action: action, Reason: reason}
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// BusinessRuleError marks a request that is well-formed but violates a
// domain rule. Rule carries a stable identifier for clients.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation [%s]: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}
