package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/services"
)

// LeaseHandler handles lease routes and nested lease documents
type LeaseHandler struct {
	leaseService *services.LeaseService
	leases       *repository.LeaseRepository
	tenants      *repository.TenantRepository
	properties   *repository.PropertyRepository
	logger       *logrus.Logger
}

// NewLeaseHandler creates a new lease handler
func NewLeaseHandler(
	leaseService *services.LeaseService,
	leases *repository.LeaseRepository,
	tenants *repository.TenantRepository,
	properties *repository.PropertyRepository,
	logger *logrus.Logger,
) *LeaseHandler {
	return &LeaseHandler{
		leaseService: leaseService,
		leases:       leases,
		tenants:      tenants,
		properties:   properties,
		logger:       logger,
	}
}

// List returns all leases with tenant, room and property
func (h *LeaseHandler) List(c *gin.Context) {
	leases, err := h.leases.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading leases.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"leases": leases})
}

// New returns the data for the new-lease form: tenants and vacant rooms
func (h *LeaseHandler) New(c *gin.Context) {
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading lease form.")
		return
	}
	rooms, err := h.properties.ListVacantRooms(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading lease form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lease":   nil,
		"tenants": tenants,
		"rooms":   rooms,
		"title":   "Add New Lease",
	})
}

// collectUploads reads the multipart document files and their positionally
// paired type and description fields
func collectUploads(c *gin.Context) ([]services.DocumentUpload, []func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Plain form posts without files are fine
		return nil, nil, nil
	}

	files := form.File["documents"]
	types := form.Value["documentTypes"]
	descriptions := form.Value["descriptions"]

	uploads := make([]services.DocumentUpload, 0, len(files))
	closers := make([]func(), 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			for _, closeFn := range closers {
				closeFn()
			}
			return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		closers = append(closers, func() { file.Close() })

		upload := services.DocumentUpload{
			FileName: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
		if i < len(types) {
			upload.DocumentType = types[i]
		}
		if i < len(descriptions) {
			upload.Description = descriptions[i]
		}
		uploads = append(uploads, upload)
	}
	return uploads, closers, nil
}

func leaseFromRequest(req *models.LeaseRequest) (*models.Lease, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	return &models.Lease{
		TenantID:    req.TenantID,
		RoomID:      req.RoomID,
		StartDate:   start,
		EndDate:     end,
		RentAmount:  req.RentAmount,
		DepositPaid: req.DepositPaid,
	}, nil
}

// Create creates a lease (marking the room occupied) with optional documents
func (h *LeaseHandler) Create(c *gin.Context) {
	var req models.LeaseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid lease form.")
		return
	}

	lease, err := leaseFromRequest(&req)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid lease form.")
		return
	}

	uploads, closers, err := collectUploads(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid document upload.")
		return
	}
	defer func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}()

	if err := h.leaseService.Create(c.Request.Context(), lease, uploads); err != nil {
		respondServerError(c, h.logger, err, "Error creating lease.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/leases")
}

// View returns one lease with tenant, room, property, payments and documents
func (h *LeaseHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id", "Lease not found.")
	if !ok {
		return
	}

	lease, err := h.leases.GetByID(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Lease not found.", "Error loading lease.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lease": lease})
}

// Edit returns the data for the edit-lease form: the lease, all tenants and
// all rooms (editing may move the lease to any room)
func (h *LeaseHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "Lease not found.")
	if !ok {
		return
	}

	lease, err := h.leases.GetBasic(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Lease not found.", "Error loading lease.")
		return
	}
	tenants, err := h.tenants.List(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading lease form.")
		return
	}
	rooms, err := h.properties.ListRooms(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading lease form.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lease":   lease,
		"tenants": tenants,
		"rooms":   rooms,
		"title":   "Edit Lease",
	})
}

// Update updates a lease and attaches any newly uploaded documents
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Lease not found.")
	if !ok {
		return
	}

	var req models.LeaseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid lease form.")
		return
	}

	lease, err := h.leases.GetBasic(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, h.logger, err, "Lease not found.", "Error updating lease.")
		return
	}

	updated, err := leaseFromRequest(&req)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid lease form.")
		return
	}
	lease.TenantID = updated.TenantID
	lease.RoomID = updated.RoomID
	lease.StartDate = updated.StartDate
	lease.EndDate = updated.EndDate
	lease.RentAmount = updated.RentAmount
	lease.DepositPaid = updated.DepositPaid

	uploads, closers, err := collectUploads(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid document upload.")
		return
	}
	defer func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}()

	if err := h.leaseService.Update(c.Request.Context(), lease, uploads); err != nil {
		respondServerError(c, h.logger, err, "Error updating lease.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/leases/%d", id))
}

// Delete removes a lease, releases its room and cascades its documents
func (h *LeaseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "Lease not found.")
	if !ok {
		return
	}

	if err := h.leaseService.Delete(c.Request.Context(), id); err != nil {
		respondLookupError(c, h.logger, err, "Lease not found.", "Error deleting lease.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/agent/leases")
}

// DownloadDocument streams a stored lease document under its original name
func (h *LeaseHandler) DownloadDocument(c *gin.Context) {
	docID, ok := parseID(c, "docId", "Document not found.")
	if !ok {
		return
	}

	doc, reader, err := h.leaseService.OpenDocument(c.Request.Context(), docID)
	if err != nil {
		respondLookupError(c, h.logger, err, "Document not found.", "Error loading document.")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.WithError(err).Error("Failed to stream lease document")
	}
}

// DeleteDocument removes one attached document (file best-effort, then row)
func (h *LeaseHandler) DeleteDocument(c *gin.Context) {
	docID, ok := parseID(c, "docId", "Document not found.")
	if !ok {
		return
	}

	if err := h.leaseService.DeleteDocument(c.Request.Context(), docID); err != nil {
		respondLookupError(c, h.logger, err, "Document not found.", "Error deleting document.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agent/leases/%s", c.Param("id")))
}
