package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/session"
)

// Authenticator is the capability check the router consults before
// dispatching any agent-only route
type Authenticator interface {
	Authenticate(c *gin.Context) (userID uint, ok bool)
}

// SessionAuthenticator resolves the session cookie against the session store
type SessionAuthenticator struct {
	sessions   session.Store
	cookieName string
	logger     *logrus.Logger
}

// NewSessionAuthenticator creates the session-backed authenticator
func NewSessionAuthenticator(sessions session.Store, cookieName string, logger *logrus.Logger) *SessionAuthenticator {
	if logger == nil {
		logger = logrus.New()
	}
	return &SessionAuthenticator{
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Authenticate resolves the request's session cookie to a user ID
func (a *SessionAuthenticator) Authenticate(c *gin.Context) (uint, bool) {
	sessionID, err := c.Cookie(a.cookieName)
	if err != nil || sessionID == "" {
		return 0, false
	}

	userID, err := a.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		if err != session.ErrNotFound {
			a.logger.WithError(err).Error("Failed to resolve session")
		}
		return 0, false
	}
	return userID, true
}

// RequireAuth gates agent-only routes. Unauthenticated requests are sent to
// the login page.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.Authenticate(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
