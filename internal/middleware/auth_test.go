package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhigdrv/tenantpro/internal/session"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	agent := router.Group("/agent")
	agent.Use(RequireAuth(auth))
	agent.GET("/dashboard", func(c *gin.Context) {
		userID := c.MustGet("user_id").(uint)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func TestRequireAuthRedirectsWithoutCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	auth := NewSessionAuthenticator(store, "tenantpro_session", quietLogger())
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthRedirectsWithStaleCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	auth := NewSessionAuthenticator(store, "tenantpro_session", quietLogger())
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "tenantpro_session", Value: "expired-session-id"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthPassesWithValidSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sessionID, err := store.Create(context.Background(), 7)
	require.NoError(t, err)

	auth := NewSessionAuthenticator(store, "tenantpro_session", quietLogger())
	router := newAuthRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "tenantpro_session", Value: sessionID})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}
