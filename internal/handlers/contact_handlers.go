package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// ContactHandler handles the public contact form and the agent inbox
type ContactHandler struct {
	contacts *repository.ContactRepository
	logger   *logrus.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *repository.ContactRepository, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// Submit accepts a public contact form submission
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid contact form.")
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  models.ContactUnread,
	}
	if err := h.contacts.Create(c.Request.Context(), message); err != nil {
		respondServerError(c, h.logger, err, "Error submitting message.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// List returns messages (optionally filtered by status) with inbox stats
func (h *ContactHandler) List(c *gin.Context) {
	status := c.Query("status")

	messages, err := h.contacts.List(c.Request.Context(), status)
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading contact messages")
		return
	}
	stats, err := h.contacts.Stats(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading contact messages")
		return
	}

	filter := status
	if filter == "" {
		filter = "all"
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":      messages,
		"stats":         stats,
		"currentFilter": filter,
	})
}

// Detail returns one message, auto-marking unread messages as read
func (h *ContactHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "id", "Message not found")
	if !ok {
		return
	}

	message, err := h.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Message not found", "Error loading message")
		return
	}

	if message.Status == models.ContactUnread {
		if err := h.contacts.MarkRead(c.Request.Context(), id); err != nil {
			respondServerError(c, h.logger, err, "Error loading message")
			return
		}
		// Reload so the response carries the stored ReadAt stamp
		message, err = h.contacts.GetByID(c.Request.Context(), id)
		if err != nil {
			respondLookupError(c, h.logger, err, "Message not found", "Error loading message")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// MarkRead marks a message read and stamps the read time
func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id", "Message not found")
	if !ok {
		return
	}

	if err := h.contacts.MarkRead(c.Request.Context(), id); err != nil {
		respondServerError(c, h.logger, err, "Error updating message")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/contacts")
}

// MarkResponded marks a message responded with optional notes
func (h *ContactHandler) MarkResponded(c *gin.Context) {
	id, ok := parseID(c, "id", "Message not found")
	if !ok {
		return
	}

	notes := c.PostForm("notes")
	if err := h.contacts.MarkResponded(c.Request.Context(), id, notes); err != nil {
		respondServerError(c, h.logger, err, "Error updating message")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/contacts")
}

// Delete removes a message and confirms as JSON
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Message not found")
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Error deleting message")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Error deleting message",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
