package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/config"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/sessions"
	"github.com/caredesk/appointment-service/internal/uploads"
	"github.com/caredesk/appointment-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	doctorHandler      *DoctorHandler
	bookingHandler     *BookingHandler
	appointmentHandler *AppointmentHandler
	dashboardHandler   *DashboardHandler
	contactHandler     *ContactHandler
	authMiddleware     *AuthMiddleware

	repo      repositories.Repository
	logger    utils.Logger
	uploadDir string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	sessionStore *sessions.Store,
	uploadStore *uploads.Store,
	cfg *config.Config,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), sessionStore, cfg.SessionTTL, cfg.RememberTTL, logger),
		doctorHandler:      NewDoctorHandler(serviceManager.Doctor(), uploadStore, logger),
		bookingHandler:     NewBookingHandler(serviceManager.Booking(), serviceManager.Doctor(), logger),
		appointmentHandler: NewAppointmentHandler(serviceManager.Appointment(), logger),
		dashboardHandler:   NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Export(), logger),
		contactHandler:     NewContactHandler(serviceManager.Contact(), logger),
		authMiddleware:     NewAuthMiddleware(sessionStore, repo, logger),
		repo:               repo,
		logger:             logger,
		uploadDir:          uploadStore.Dir(),
	}
}

// SetupRoutes registers all routes and shared middleware.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(RequestIDMiddleware())
	router.Use(utils.ContextLogger(hm.logger))
	router.Use(utils.LoggerMiddleware(hm.logger))
	router.Use(RecoveryMiddleware(hm.logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware())
	router.Use(hm.authMiddleware.LoadUser())

	router.GET("/health", hm.healthCheck)

	// Uploaded profile images.
	router.Static("/uploads", hm.uploadDir)

	// Public pages.
	router.GET("/", hm.doctorHandler.Home)
	router.GET("/doctors", hm.doctorHandler.List)
	router.GET("/doctors/:id", hm.doctorHandler.Get)

	// Auth.
	router.POST("/login", hm.authHandler.Login)
	router.POST("/register", hm.authHandler.Register)
	router.GET("/logout", hm.authMiddleware.RequireAuth(), hm.authHandler.Logout)

	// Profile (any logged-in role).
	profile := router.Group("/dashboard/profile", hm.authMiddleware.RequireAuth())
	{
		profile.GET("", hm.authHandler.GetProfile)
		profile.POST("", hm.authHandler.UpdateProfile)
	}

	// Patient area.
	router.GET("/dashboard", hm.authMiddleware.RequirePatient(), hm.dashboardHandler.PatientDashboard)
	book := router.Group("/book", hm.authMiddleware.RequirePatient())
	{
		book.GET("", hm.bookingHandler.BookingForm)
		book.POST("", hm.bookingHandler.Book)
	}

	// Doctor area.
	doctorArea := router.Group("/doctor-dashboard", hm.authMiddleware.RequireDoctor())
	{
		doctorArea.GET("", hm.dashboardHandler.DoctorDashboard)
		doctorArea.GET("/export", hm.dashboardHandler.ExportSchedule)
		doctorArea.POST("/profile-image", hm.doctorHandler.UploadProfileImage)
	}

	// Appointment actions. Cancel is open to both roles; the service decides
	// who may act on which appointment.
	appointment := router.Group("/appointment", hm.authMiddleware.RequireAuth())
	{
		appointment.POST("/:id/cancel", hm.appointmentHandler.Cancel)
		appointment.POST("/:id/complete", hm.authMiddleware.RequireDoctor(), hm.appointmentHandler.Complete)
		appointment.GET("/:id/notes", hm.authMiddleware.RequireDoctor(), hm.appointmentHandler.GetNotes)
		appointment.POST("/:id/notes", hm.authMiddleware.RequireDoctor(), hm.appointmentHandler.UpdateNotes)
	}

	// Public JSON API.
	api := router.Group("/api")
	{
		api.GET("/doctors/:id/available-slots", hm.bookingHandler.AvailableSlots)
		api.POST("/contact", hm.contactHandler.Submit)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hm.repo.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
