package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/utils"
)

type BookingHandler struct {
	BaseHandler
	bookingService services.BookingService
	doctorService  services.DoctorService
}

func NewBookingHandler(bookingService services.BookingService, doctorService services.DoctorService, logger utils.Logger) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    NewBaseHandler(logger),
		bookingService: bookingService,
		doctorService:  doctorService,
	}
}

// BookingForm returns the data the booking page needs: the doctor list and
// the suggested earliest date. The suggestion is tomorrow, but the server
// accepts today; only strictly-past dates are rejected.
func (h *BookingHandler) BookingForm(c *gin.Context) {
	doctors, err := h.doctorService.List(c.Request.Context(), "", "")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctors":  doctors.Doctors,
		"min_date": time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	})
}

func (h *BookingHandler) Book(c *gin.Context) {
	h.LogRequest(c, "Booking appointment")
	user, _ := CurrentUser(c)

	var req services.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	appointment, err := h.bookingService.Book(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Your appointment has been booked successfully. You will receive a confirmation.",
		"appointment": appointment,
	})
}

// AvailableSlots keeps the original AJAX wire shape:
// {"success": true, "slots": [...]}.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	doctorID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	slots, err := h.bookingService.AvailableSlots(c.Request.Context(), doctorID, c.Query("date"))
	if err != nil {
		switch err {
		case services.ErrMissingDate:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing date parameter"})
		case services.ErrInvalidDate:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date format"})
		case services.ErrDoctorNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Doctor not found"})
		default:
			h.LogError(c, err, "Failed to load available slots")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}
