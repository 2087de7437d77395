package services

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/storage"
)

func newTestLeaseService(t *testing.T, db *gorm.DB) *LeaseService {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), quietLogger())
	require.NoError(t, err)
	return NewLeaseService(repository.NewLeaseRepository(db), store, 1024*1024, quietLogger())
}

func seedVacantRoom(t *testing.T, db *gorm.DB) (*models.Room, *models.Tenant) {
	t.Helper()

	property := &models.Property{
		Name:    "Maple Court",
		Address: "9 Maple St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62702",
	}
	require.NoError(t, db.Create(property).Error)

	room := &models.Room{PropertyID: property.ID, RoomNumber: "201", Status: models.RoomVacant, RentAmount: 1100}
	require.NoError(t, db.Create(room).Error)

	tenant := &models.Tenant{FirstName: "Alice", LastName: "Green", Email: "alice@example.com"}
	require.NoError(t, db.Create(tenant).Error)

	return room, tenant
}

func TestValidateUpload(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)

	tests := []struct {
		name    string
		upload  DocumentUpload
		wantErr bool
	}{
		{"pdf allowed", DocumentUpload{FileName: "contract.pdf", Size: 100}, false},
		{"uppercase extension allowed", DocumentUpload{FileName: "scan.JPG", Size: 100}, false},
		{"executable rejected", DocumentUpload{FileName: "virus.exe", Size: 100}, true},
		{"no extension rejected", DocumentUpload{FileName: "README", Size: 100}, true},
		{"oversize rejected", DocumentUpload{FileName: "big.pdf", Size: 2 * 1024 * 1024}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateUpload(&tt.upload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLeaseCreateMarksRoomOccupied(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)
	room, tenant := seedVacantRoom(t, db)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		RentAmount: 1100,
	}
	uploads := []DocumentUpload{{
		FileName:     "contract.pdf",
		Size:         22,
		Content:      strings.NewReader("signed lease agreement"),
		DocumentType: "contract",
		Description:  "Signed copy",
	}}

	require.NoError(t, svc.Create(context.Background(), lease, uploads))

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, updated.Status)

	var docs []models.LeaseDocument
	require.NoError(t, db.Where("lease_id = ?", lease.ID).Find(&docs).Error)
	require.Len(t, docs, 1)
	assert.Equal(t, "contract.pdf", docs[0].FileName)
	assert.NotEqual(t, docs[0].FileName, docs[0].StoredName)
	assert.True(t, strings.HasSuffix(docs[0].StoredName, ".pdf"))

	_, err := os.Stat(docs[0].FilePath)
	assert.NoError(t, err, "stored file should exist on disk")
}

func TestLeaseCreateRejectsBadUploadBeforeWriting(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)
	room, tenant := seedVacantRoom(t, db)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		RentAmount: 1100,
	}
	uploads := []DocumentUpload{{
		FileName: "malware.exe",
		Size:     10,
		Content:  strings.NewReader("nope"),
	}}

	require.Error(t, svc.Create(context.Background(), lease, uploads))

	// Nothing was written: no lease, room still vacant
	var count int64
	require.NoError(t, db.Model(&models.Lease{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomVacant, updated.Status)
}

func TestLeaseDeleteReleasesRoomAndCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)
	room, tenant := seedVacantRoom(t, db)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1100,
	}
	uploads := []DocumentUpload{{
		FileName:     "id-scan.png",
		Size:         8,
		Content:      strings.NewReader("png data"),
		DocumentType: "id",
	}}
	require.NoError(t, svc.Create(context.Background(), lease, uploads))

	payment := &models.Payment{
		LeaseID:         lease.ID,
		Amount:          1100,
		PaymentDate:     time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		PaymentForMonth: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.PaymentPaid,
	}
	require.NoError(t, db.Create(payment).Error)

	var docs []models.LeaseDocument
	require.NoError(t, db.Where("lease_id = ?", lease.ID).Find(&docs).Error)
	require.Len(t, docs, 1)
	filePath := docs[0].FilePath

	require.NoError(t, svc.Delete(context.Background(), lease.ID))

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomVacant, updated.Status)

	err := db.First(&models.Lease{}, lease.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var paymentCount, docCount int64
	require.NoError(t, db.Model(&models.Payment{}).Where("lease_id = ?", lease.ID).Count(&paymentCount).Error)
	require.NoError(t, db.Model(&models.LeaseDocument{}).Where("lease_id = ?", lease.ID).Count(&docCount).Error)
	assert.Equal(t, int64(0), paymentCount)
	assert.Equal(t, int64(0), docCount)

	_, statErr := os.Stat(filePath)
	assert.True(t, os.IsNotExist(statErr), "stored file should be removed")
}

func TestDeleteDocumentContinuesWhenFileMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)
	room, tenant := seedVacantRoom(t, db)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1100,
	}
	require.NoError(t, svc.Create(context.Background(), lease, nil))

	doc := &models.LeaseDocument{
		LeaseID:      lease.ID,
		DocumentType: "contract",
		FileName:     "gone.pdf",
		StoredName:   "does-not-exist.pdf",
		FilePath:     "/nonexistent/does-not-exist.pdf",
	}
	require.NoError(t, db.Create(doc).Error)

	// The missing file is logged and skipped; the row still goes away
	require.NoError(t, svc.DeleteDocument(context.Background(), doc.ID))

	err := db.First(&models.LeaseDocument{}, doc.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOpenDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLeaseService(t, db)
	room, tenant := seedVacantRoom(t, db)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1100,
	}
	uploads := []DocumentUpload{{
		FileName:     "notes.txt",
		Size:         11,
		Content:      strings.NewReader("hello lease"),
		DocumentType: "other",
	}}
	require.NoError(t, svc.Create(context.Background(), lease, uploads))

	var docs []models.LeaseDocument
	require.NoError(t, db.Where("lease_id = ?", lease.ID).Find(&docs).Error)
	require.Len(t, docs, 1)

	doc, reader, err := svc.OpenDocument(context.Background(), docs[0].ID)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "notes.txt", doc.FileName)

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello lease", string(content))
}
