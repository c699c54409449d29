package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/uploads"
	"github.com/caredesk/appointment-service/internal/utils"
)

type DoctorHandler struct {
	BaseHandler
	doctorService services.DoctorService
	uploadStore   *uploads.Store
}

func NewDoctorHandler(doctorService services.DoctorService, uploadStore *uploads.Store, logger utils.Logger) *DoctorHandler {
	return &DoctorHandler{
		BaseHandler:   NewBaseHandler(logger),
		doctorService: doctorService,
		uploadStore:   uploadStore,
	}
}

// Home returns the landing payload with the featured doctors.
func (h *DoctorHandler) Home(c *gin.Context) {
	featured, err := h.doctorService.Featured(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": featured})
}

// List returns all doctors, filterable by specialization and free text.
func (h *DoctorHandler) List(c *gin.Context) {
	resp, err := h.doctorService.List(c.Request.Context(), c.Query("specialization"), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doctorID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorService.Get(c.Request.Context(), doctorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// UploadProfileImage stores a new profile image for the logged-in doctor and
// removes the replaced file.
func (h *DoctorHandler) UploadProfileImage(c *gin.Context) {
	h.LogRequest(c, "Uploading profile image")
	user, _ := CurrentUser(c)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing image file"})
		return
	}

	filename, err := h.uploadStore.Save(header)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Unsupported file type"})
		case errors.Is(err, uploads.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Message: "File too large"})
		default:
			h.LogError(c, err, "Failed to store upload")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		}
		return
	}

	previous, err := h.doctorService.SetProfileImage(c.Request.Context(), user.ID, filename)
	if err != nil {
		// The row was not updated; don't leave the new file orphaned.
		if removeErr := h.uploadStore.Remove(filename); removeErr != nil {
			h.LogError(c, removeErr, "Failed to remove unused upload")
		}
		h.handleServiceError(c, err)
		return
	}
	if previous != "" {
		if err := h.uploadStore.Remove(previous); err != nil {
			h.LogError(c, err, "Failed to remove replaced profile image")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Profile image updated.",
		"profile_image": filename,
	})
}
