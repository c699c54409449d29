package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/utils"
	"github.com/caredesk/appointment-service/internal/validator"
)

// ErrorResponse is the JSON error envelope for all handlers.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the shared handler dependencies and helpers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service-layer errors to HTTP responses with the
// user-facing messages the frontend shows verbatim.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{"rule": businessRuleError.Rule},
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Permission denied.",
			Details: map[string]interface{}{
				"action": permissionError.Action,
				"reason": permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found."})
	case errors.Is(err, services.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Invalid doctor selected."})
	case errors.Is(err, services.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Appointment not found."})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid username or password."})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Username already taken."})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Email already registered."})
	case errors.Is(err, services.ErrMissingDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing date parameter"})
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid date format"})
	case errors.Is(err, services.ErrDateInPast):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Appointment date must be in the future."})
	case errors.Is(err, services.ErrSlotNotOffered):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Selected date or time is not available for this doctor."})
	case errors.Is(err, services.ErrSlotTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "This time slot is no longer available. Please choose another."})
	case errors.Is(err, services.ErrPatientSlotTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "You already have an appointment at this date and time."})
	case errors.Is(err, services.ErrCannotCancel):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "This appointment cannot be cancelled."})
	case errors.Is(err, services.ErrCannotComplete):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "This appointment cannot be completed."})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

// parseIDParam reads a positive integer path parameter, responding 400 itself
// on failure.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid " + name})
		return 0, false
	}
	return id, true
}
