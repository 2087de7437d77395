package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhigdrv/tenantpro/internal/models"
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

func createProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:    "Riverside Flats",
		Address: "42 River Rd",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62703",
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestTenantCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewTenantRepository(db)
	ctx := context.Background()

	first := &models.Tenant{FirstName: "John", LastName: "Doe", Email: "dup@example.com"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Tenant{FirstName: "Jane", LastName: "Doe", Email: "dup@example.com"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestPropertyDeleteRemovesRooms(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	property := createProperty(t, db)
	rooms := []models.Room{
		{PropertyID: property.ID, RoomNumber: "1", Status: models.RoomVacant, RentAmount: 800},
		{PropertyID: property.ID, RoomNumber: "2", Status: models.RoomOccupied, RentAmount: 950},
	}
	require.NoError(t, db.Create(&rooms).Error)

	require.NoError(t, repo.Delete(ctx, property.ID))

	var roomCount, propertyCount int64
	require.NoError(t, db.Model(&models.Room{}).Where("property_id = ?", property.ID).Count(&roomCount).Error)
	require.NoError(t, db.Model(&models.Property{}).Count(&propertyCount).Error)
	assert.Equal(t, int64(0), roomCount)
	assert.Equal(t, int64(0), propertyCount)
}

func TestLeaseCreateWithRoomIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeaseRepository(db)
	ctx := context.Background()

	property := createProperty(t, db)
	room := &models.Room{PropertyID: property.ID, RoomNumber: "3A", Status: models.RoomVacant, RentAmount: 1000}
	require.NoError(t, db.Create(room).Error)
	tenant := &models.Tenant{FirstName: "Sam", LastName: "Lee", Email: "sam@example.com"}
	require.NoError(t, db.Create(tenant).Error)

	lease := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     room.ID,
		StartDate:  time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 1000,
	}
	require.NoError(t, repo.CreateWithRoom(ctx, lease))

	var updated models.Room
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, updated.Status)

	require.NoError(t, repo.DeleteWithRoom(ctx, lease))
	require.NoError(t, db.First(&updated, room.ID).Error)
	assert.Equal(t, models.RoomVacant, updated.Status)
}

func TestReleaseStaleOccupancies(t *testing.T) {
	db := newTestDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	property := createProperty(t, db)
	stale := &models.Room{PropertyID: property.ID, RoomNumber: "S1", Status: models.RoomOccupied, RentAmount: 700}
	active := &models.Room{PropertyID: property.ID, RoomNumber: "A1", Status: models.RoomOccupied, RentAmount: 700}
	vacant := &models.Room{PropertyID: property.ID, RoomNumber: "V1", Status: models.RoomVacant, RentAmount: 700}
	maint := &models.Room{PropertyID: property.ID, RoomNumber: "M1", Status: models.RoomMaintenance, RentAmount: 700}
	for _, room := range []*models.Room{stale, active, vacant, maint} {
		require.NoError(t, db.Create(room).Error)
	}

	tenant := &models.Tenant{FirstName: "Kim", LastName: "Park", Email: "kim@example.com"}
	require.NoError(t, db.Create(tenant).Error)

	leases := []models.Lease{
		// Expired lease on the stale room
		{TenantID: tenant.ID, RoomID: stale.ID, StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(-1, 0, 0), RentAmount: 700},
		// Active lease keeps its room occupied
		{TenantID: tenant.ID, RoomID: active.ID, StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 11, 0), RentAmount: 700},
	}
	require.NoError(t, db.Create(&leases).Error)

	released, err := repo.ReleaseStaleOccupancies(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	statuses := map[uint]models.RoomStatus{}
	var rooms []models.Room
	require.NoError(t, db.Find(&rooms).Error)
	for _, room := range rooms {
		statuses[room.ID] = room.Status
	}
	assert.Equal(t, models.RoomVacant, statuses[stale.ID])
	assert.Equal(t, models.RoomOccupied, statuses[active.ID])
	assert.Equal(t, models.RoomVacant, statuses[vacant.ID])
	assert.Equal(t, models.RoomMaintenance, statuses[maint.ID])
}

func TestContactStatsAndTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	messages := []models.ContactMessage{
		{Name: "A", Email: "a@example.com", Message: "Interested in a room", Status: models.ContactUnread},
		{Name: "B", Email: "b@example.com", Message: "Question about parking", Status: models.ContactUnread},
	}
	require.NoError(t, db.Create(&messages).Error)

	require.NoError(t, repo.MarkRead(ctx, messages[0].ID))

	read, err := repo.GetByID(ctx, messages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRead, read.Status)
	require.NotNil(t, read.ReadAt)

	require.NoError(t, repo.MarkResponded(ctx, messages[0].ID, "Called back"))
	responded, err := repo.GetByID(ctx, messages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactResponded, responded.Status)
	assert.Equal(t, "Called back", responded.Notes)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Unread)
	assert.Equal(t, int64(1), stats.Responded)

	unread, err := repo.List(ctx, string(models.ContactUnread))
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "B", unread[0].Name)
}

func TestSumPaidForLeasesEmptySet(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)

	total, err := repo.SumPaidForLeases(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}
