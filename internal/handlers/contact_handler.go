package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/utils"
)

type ContactHandler struct {
	BaseHandler
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService, logger utils.Logger) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    NewBaseHandler(logger),
		contactService: contactService,
	}
}

// Submit keeps the original AJAX wire shape: {"success": ..., ...}.
func (h *ContactHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Contact submission")

	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "All required fields must be filled."})
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), &req); err != nil {
		var bre *services.BusinessRuleError
		if errors.As(err, &bre) {
			message := "All required fields must be filled."
			if bre.Rule == "contact.email" {
				message = "Please enter a valid email address."
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
			return
		}
		h.LogError(c, err, "Failed to store contact submission")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not send message. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Your message has been sent."})
}
