package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// PropertyHandler handles property and nested room routes
type PropertyHandler struct {
	properties *repository.PropertyRepository
	logger     *logrus.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *repository.PropertyRepository, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

// List returns all properties with their rooms
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading properties.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// New returns the data for the new-property form
func (h *PropertyHandler) New(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"property": nil, "title": "Add New Property"})
}

// Create creates a property from form input
func (h *PropertyHandler) Create(c *gin.Context) {
	var req models.PropertyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid property form.")
		return
	}

	property := &models.Property{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Description: req.Description,
	}
	if err := h.properties.Create(c.Request.Context(), property); err != nil {
		respondServerError(c, h.logger, err, "Error creating property.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/properties")
}

// View returns one property with its rooms
func (h *PropertyHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Property not found.", "Error loading property.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

// Edit returns the data for the edit-property form
func (h *PropertyHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Property not found.", "Error loading property.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property, "title": "Edit Property"})
}

// Update updates a property from form input
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	var req models.PropertyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid property form.")
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Property not found.", "Error updating property.")
		return
	}

	property.Name = req.Name
	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	property.Description = req.Description

	if err := h.properties.Update(c.Request.Context(), property); err != nil {
		respondServerError(c, h.logger, err, "Error updating property.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/properties/%d", id))
}

// Delete hard-deletes a property and its rooms
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id); err != nil {
		respondServerError(c, h.logger, err, "Error deleting property.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/properties")
}

// NewRoom returns the data for the new-room form under a property
func (h *PropertyHandler) NewRoom(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Property not found.", "Error loading property.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": nil, "property": property, "title": "Add New Room"})
}

// CreateRoom creates a room under a property
func (h *PropertyHandler) CreateRoom(c *gin.Context) {
	id, ok := parseID(c, "id", "Property not found.")
	if !ok {
		return
	}

	var req models.RoomRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid room form.")
		return
	}

	room := &models.Room{
		PropertyID: id,
		RoomNumber: req.RoomNumber,
		RentAmount: req.RentAmount,
		Status:     models.RoomVacant,
	}
	if err := h.properties.CreateRoom(c.Request.Context(), room); err != nil {
		respondServerError(c, h.logger, err, "Error creating room.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/properties/%d", id))
}

// EditRoom returns the data for the edit-room form
func (h *PropertyHandler) EditRoom(c *gin.Context) {
	roomID, ok := parseID(c, "roomId", "Room not found.")
	if !ok {
		return
	}

	room, err := h.properties.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		respondLookupError(c, h.logger, err, "Room not found.", "Error loading room.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room, "property": room.Property, "title": "Edit Room"})
}

// UpdateRoom updates a room, including its status
func (h *PropertyHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := parseID(c, "roomId", "Room not found.")
	if !ok {
		return
	}

	var req models.RoomRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid room form.")
		return
	}

	room, err := h.properties.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		respondLookupError(c, h.logger, err, "Room not found.", "Error updating room.")
		return
	}

	room.RoomNumber = req.RoomNumber
	room.RentAmount = req.RentAmount
	if req.Status != "" {
		room.Status = models.RoomStatus(req.Status)
	}
	room.Property = nil

	if err := h.properties.UpdateRoom(c.Request.Context(), room); err != nil {
		respondServerError(c, h.logger, err, "Error updating room.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/properties/%s", c.Param("id")))
}

// DeleteRoom hard-deletes a room
func (h *PropertyHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := parseID(c, "roomId", "Room not found.")
	if !ok {
		return
	}

	if err := h.properties.DeleteRoom(c.Request.Context(), roomID); err != nil {
		respondServerError(c, h.logger, err, "Error deleting room.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/properties/%s", c.Param("id")))
}
