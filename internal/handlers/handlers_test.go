package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Lease{},
		&models.LeaseDocument{},
		&models.Payment{},
		&models.MaintenanceRequest{},
		&models.ContactMessage{},
	))
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestRouter wires handlers without the auth middleware; the middleware
// has its own tests.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := quietLogger()

	tenantHandler := NewTenantHandler(repository.NewTenantRepository(db), logger)
	propertyHandler := NewPropertyHandler(repository.NewPropertyRepository(db), logger)
	contactHandler := NewContactHandler(repository.NewContactRepository(db), logger)
	reportService := services.NewReportService(
		repository.NewReportRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewMaintenanceRepository(db),
		logger,
	)
	reportHandler := NewReportHandler(reportService, logger)

	router := gin.New()
	router.POST("/contact", contactHandler.Submit)

	agent := router.Group("/agent")
	{
		agent.GET("/properties/:id", propertyHandler.View)

		agent.POST("/tenants", tenantHandler.Create)
		agent.GET("/tenants/:id", tenantHandler.View)
		agent.POST("/tenants/:id/edit", tenantHandler.Update)

		agent.GET("/contacts", contactHandler.List)
		agent.GET("/contacts/:id", contactHandler.Detail)
		agent.POST("/contacts/:id/mark-read", contactHandler.MarkRead)
		agent.POST("/contacts/:id/delete", contactHandler.Delete)

		agent.GET("/reports/export/payments", reportHandler.ExportPayments)
		agent.GET("/reports/lease-expiry", reportHandler.LeaseExpiry)
	}
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestTenantCreateRedirects(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := postForm(router, "/agent/tenants", url.Values{
		"firstName": {"John"},
		"lastName":  {"Doe"},
		"email":     {"john@example.com"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/agent/tenants", w.Header().Get("Location"))
}

func TestTenantCreateDuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	form := url.Values{
		"firstName": {"John"},
		"lastName":  {"Doe"},
		"email":     {"john@example.com"},
	}
	first := postForm(router, "/agent/tenants", form)
	require.Equal(t, http.StatusSeeOther, first.Code)

	second := postForm(router, "/agent/tenants", form)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Error: A tenant with this email already exists.", second.Body.String())
}

func TestTenantUpdatePostsToEditPath(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	tenant := &models.Tenant{FirstName: "John", LastName: "Doe", Email: "john@example.com"}
	require.NoError(t, db.Create(tenant).Error)

	w := postForm(router, "/agent/tenants/1/edit", url.Values{
		"firstName": {"Johnny"},
		"lastName":  {"Doe"},
		"email":     {"john@example.com"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/agent/tenants/1", w.Header().Get("Location"))

	var updated models.Tenant
	require.NoError(t, db.First(&updated, tenant.ID).Error)
	assert.Equal(t, "Johnny", updated.FirstName)
}

func TestTenantViewNotFound(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/tenants/9999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tenant not found.", w.Body.String())
}

func TestMalformedIDBehavesLikeMissingRecord(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/properties/not-a-number", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Property not found.", w.Body.String())
}

func TestContactSubmitAndDetailMarksRead(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := postForm(router, "/contact", url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"Do you have vacancies?"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var message models.ContactMessage
	require.NoError(t, db.First(&message).Error)
	require.Equal(t, models.ContactUnread, message.Status)

	// Viewing the message flips unread to read
	detail := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/contacts/1", nil)
	router.ServeHTTP(detail, req)
	require.Equal(t, http.StatusOK, detail.Code)

	// The response reflects the stored row, read stamp included
	assert.Contains(t, detail.Body.String(), `"status":"read"`)
	assert.NotContains(t, detail.Body.String(), `"readAt":null`)

	require.NoError(t, db.First(&message, message.ID).Error)
	assert.Equal(t, models.ContactRead, message.Status)
	assert.NotNil(t, message.ReadAt)
}

func TestContactSubmitRequiresEmail(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := postForm(router, "/contact", url.Values{
		"name":    {"Visitor"},
		"message": {"No email supplied"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactMarkReadRedirectsToInbox(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	message := &models.ContactMessage{Name: "B", Email: "b@example.com", Message: "Hi", Status: models.ContactUnread}
	require.NoError(t, db.Create(message).Error)

	w := postForm(router, "/agent/contacts/1/mark-read", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/agent/contacts", w.Header().Get("Location"))

	var updated models.ContactMessage
	require.NoError(t, db.First(&updated, message.ID).Error)
	assert.Equal(t, models.ContactRead, updated.Status)
	assert.NotNil(t, updated.ReadAt)
}

func TestContactDeleteReturnsJSON(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	message := &models.ContactMessage{Name: "A", Email: "a@example.com", Message: "Hi", Status: models.ContactUnread}
	require.NoError(t, db.Create(message).Error)

	w := postForm(router, "/agent/contacts/1/delete", url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestExportPaymentsResponseHeaders(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/reports/export/payments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=payments-report.csv", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Date,Tenant,Property,Room,Amount,Status,Payment For,Note"))
}

func TestLeaseExpiryRejectsBadDaysParameter(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/reports/lease-expiry?days=banana", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaseExpiryDefaultsWindow(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/reports/lease-expiry", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"daysAhead":30`)
}

func TestParseDateHelpers(t *testing.T) {
	parsed, err := parseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), parsed)

	none, err := parseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseDate("06/01/2025")
	assert.Error(t, err)
}
