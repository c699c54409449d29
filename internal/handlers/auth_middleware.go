package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/models"
	"github.com/caredesk/appointment-service/internal/repositories"
	"github.com/caredesk/appointment-service/internal/sessions"
	"github.com/caredesk/appointment-service/internal/utils"
)

// SessionCookieName is the browser cookie holding the opaque session token.
const SessionCookieName = "clinic_session"

const currentUserKey = "current_user"

// AuthMiddleware resolves session cookies to users and enforces role access.
type AuthMiddleware struct {
	store  *sessions.Store
	repo   repositories.Repository
	logger utils.Logger
}

func NewAuthMiddleware(store *sessions.Store, repo repositories.Repository, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{store: store, repo: repo, logger: logger}
}

// LoadUser resolves the session cookie to a user and stores it on the
// context. It never rejects; the Require* middlewares do that.
func (m *AuthMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := m.store.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		user, err := m.repo.User().GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			// A live session for a deleted user; drop it.
			if repositories.IsNotFoundError(err) {
				_ = m.store.Destroy(c.Request.Context(), token)
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Set("user_id", user.ID)
		c.Set("session_token", token)
		c.Next()
	}
}

// CurrentUser returns the logged-in user set by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

func (m *AuthMiddleware) rejectUnauthenticated(c *gin.Context) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Please log in to access this page.",
		})
		return
	}
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, "/login?next="+next)
	c.Abort()
}

// RequireAuth rejects requests without a logged-in user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			m.rejectUnauthenticated(c)
			return
		}
		c.Next()
	}
}

// RequirePatient allows only patients through. Logged-in users with another
// role are sent to their own landing page.
func (m *AuthMiddleware) RequirePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			m.rejectUnauthenticated(c)
			return
		}
		if !user.IsPatient() {
			m.rejectWrongRole(c, user)
			return
		}
		c.Next()
	}
}

// RequireDoctor allows only doctors through.
func (m *AuthMiddleware) RequireDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			m.rejectUnauthenticated(c)
			return
		}
		if !user.IsDoctor() {
			m.rejectWrongRole(c, user)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) rejectWrongRole(c *gin.Context, user *models.User) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "You do not have permission to access this page.",
		})
		return
	}
	c.Redirect(http.StatusFound, landingPage(user))
	c.Abort()
}

// landingPage is where a user belongs after login.
func landingPage(user *models.User) string {
	switch {
	case user.IsPatient():
		return "/dashboard"
	case user.IsDoctor():
		return "/doctor-dashboard"
	default:
		return "/"
	}
}
