package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/utils"
)

type AppointmentHandler struct {
	BaseHandler
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService, logger utils.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler:        NewBaseHandler(logger),
		appointmentService: appointmentService,
	}
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.LogRequest(c, "Cancelling appointment")
	user, _ := CurrentUser(c)

	appointmentID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.Cancel(c.Request.Context(), user, appointmentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled."})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.LogRequest(c, "Completing appointment")
	user, _ := CurrentUser(c)

	appointmentID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.Complete(c.Request.Context(), user, appointmentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment marked as completed."})
}

func (h *AppointmentHandler) GetNotes(c *gin.Context) {
	user, _ := CurrentUser(c)

	appointmentID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetNotes(c.Request.Context(), user, appointmentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	h.LogRequest(c, "Updating appointment notes")
	user, _ := CurrentUser(c)

	appointmentID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	if err := h.appointmentService.UpdateNotes(c.Request.Context(), user, appointmentID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notes saved."})
}
