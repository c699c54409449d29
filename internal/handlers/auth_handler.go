package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/sessions"
	"github.com/caredesk/appointment-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	store       *sessions.Store
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

func NewAuthHandler(authService services.AuthService, store *sessions.Store, sessionTTL, rememberTTL time.Duration, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		store:       store,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully. You can now log in.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	session, err := h.store.Create(c.Request.Context(), user, req.RememberMe)
	if err != nil {
		h.LogError(c, err, "Failed to create session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	maxAge := int(h.sessionTTL.Seconds())
	if req.RememberMe {
		maxAge = int(h.rememberTTL.Seconds())
	}
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Welcome back, " + user.DisplayName() + "!",
		"redirect": landingPage(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := c.GetString("session_token"); token != "" {
		if err := h.store.Destroy(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to destroy session")
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, _ := CurrentUser(c)

	profile, err := h.authService.GetUser(c.Request.Context(), user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	h.LogRequest(c, "Updating profile")
	user, _ := CurrentUser(c)

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    updated,
	})
}
