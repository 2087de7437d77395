package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/services"
)

// ReportHandler serves the agent dashboard, reports and CSV exports
type ReportHandler struct {
	reportService *services.ReportService
	logger        *logrus.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// Dashboard returns the portfolio summary with the revenue trend
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Revenue returns paid payments in a date range, defaulting to the current
// year to date
func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, ok := h.revenueRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Revenue(c.Request.Context(), from, to)
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading revenue report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Payments returns payments filtered by status and date range
func (h *ReportHandler) Payments(c *gin.Context) {
	from, err := parseOptionalDate(c.Query("startDate"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid startDate parameter.")
		return
	}
	to, err := parseOptionalDate(c.Query("endDate"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid endDate parameter.")
		return
	}

	report, err := h.reportService.Payments(c.Request.Context(), c.Query("status"), from, to)
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading payments report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Outstanding returns pending payments grouped by tenant
func (h *ReportHandler) Outstanding(c *gin.Context) {
	report, err := h.reportService.Outstanding(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading outstanding report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Occupancy returns per-property and overall occupancy figures
func (h *ReportHandler) Occupancy(c *gin.Context) {
	report, err := h.reportService.Occupancy(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading occupancy report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Vacancy returns all vacant rooms with potential revenue
func (h *ReportHandler) Vacancy(c *gin.Context) {
	report, err := h.reportService.Vacancy(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading vacancy report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Tenants returns every tenant with current lease and payment totals
func (h *ReportHandler) Tenants(c *gin.Context) {
	entries, err := h.reportService.Tenants(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading tenant report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenants": entries})
}

// LeaseExpiry returns leases ending within the requested window
func (h *ReportHandler) LeaseExpiry(c *gin.Context) {
	days := services.DefaultExpiryWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.String(http.StatusBadRequest, "Invalid days parameter.")
			return
		}
		days = parsed
	}

	report, err := h.reportService.LeaseExpiry(c.Request.Context(), days)
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading lease expiry report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Properties returns the per-property performance breakdown
func (h *ReportHandler) Properties(c *gin.Context) {
	entries, err := h.reportService.Properties(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading property report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": entries})
}

// Maintenance returns maintenance requests filtered by status and priority
func (h *ReportHandler) Maintenance(c *gin.Context) {
	report, err := h.reportService.Maintenance(c.Request.Context(), c.Query("status"), c.Query("priority"))
	if err != nil {
		respondServerError(c, h.logger, err, "Error loading maintenance report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportRevenue streams the revenue report as CSV
func (h *ReportHandler) ExportRevenue(c *gin.Context) {
	from, to, ok := h.revenueRange(c)
	if !ok {
		return
	}

	data, err := h.reportService.ExportRevenue(c.Request.Context(), from, to)
	if err != nil {
		respondServerError(c, h.logger, err, "Error exporting revenue report")
		return
	}
	writeCSVAttachment(c, "revenue-report.csv", data)
}

// ExportPayments streams all payments as CSV
func (h *ReportHandler) ExportPayments(c *gin.Context) {
	data, err := h.reportService.ExportPayments(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error exporting payments report")
		return
	}
	writeCSVAttachment(c, "payments-report.csv", data)
}

// ExportTenants streams the tenant directory as CSV
func (h *ReportHandler) ExportTenants(c *gin.Context) {
	data, err := h.reportService.ExportTenants(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err, "Error exporting tenants report")
		return
	}
	writeCSVAttachment(c, "tenants-report.csv", data)
}

// revenueRange resolves the startDate/endDate query params, defaulting to
// January 1st of the current year through now.
func (h *ReportHandler) revenueRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()

	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	to := now

	parsed, err := parseOptionalDate(c.Query("startDate"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid startDate parameter.")
		return time.Time{}, time.Time{}, false
	}
	if parsed != nil {
		from = *parsed
	}

	parsed, err = parseOptionalDate(c.Query("endDate"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid endDate parameter.")
		return time.Time{}, time.Time{}, false
	}
	if parsed != nil {
		to = *parsed
	}
	return from, to, true
}

func writeCSVAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
