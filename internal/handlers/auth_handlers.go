package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/config"
	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/services"
)

// AuthHandler handles agent sign-in, sign-up and sign-out
type AuthHandler struct {
	authService *services.AuthService
	session     config.SessionConfig
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, session config.SessionConfig, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, session: session, logger: logger}
}

// Root redirects the bare root path to the login page
func (h *AuthHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage returns the login page context
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"error": c.Query("error")})
}

// Login verifies credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectLoginError(c, "Invalid email or password")
		return
	}

	_, sessionID, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.redirectLoginError(c, "Invalid email or password")
			return
		}
		respondServerError(c, h.logger, err, "Error logging in")
		return
	}

	h.setSessionCookie(c, sessionID)
	c.Redirect(http.StatusSeeOther, "/agent/dashboard")
}

// RegisterPage returns the registration page context
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"error": c.Query("error")})
}

// Register creates a new agent account and signs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid registration form.")
		return
	}

	_, sessionID, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.String(http.StatusConflict, "Error: An account with this email already exists.")
			return
		}
		respondServerError(c, h.logger, err, "Error creating account")
		return
	}

	h.setSessionCookie(c, sessionID)
	c.Redirect(http.StatusSeeOther, "/agent/dashboard")
}

// Logout destroys the session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.session.CookieName); err == nil && sessionID != "" {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			h.logger.WithError(err).Warn("Failed to destroy session on logout")
		}
	}
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.CookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(h.session.CookieName, sessionID, h.session.TTL, "/", "", h.session.CookieSecure, true)
}

func (h *AuthHandler) redirectLoginError(c *gin.Context, message string) {
	c.Redirect(http.StatusSeeOther, "/login?error="+url.QueryEscape(message))
}
