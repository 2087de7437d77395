package jobs

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Lease{},
	))
	return db
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestReconcilerReleasesStaleRooms(t *testing.T) {
	db := newTestDB(t)

	property := &models.Property{
		Name:    "Elm House",
		Address: "7 Elm St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",
	}
	require.NoError(t, db.Create(property).Error)

	stale := &models.Room{PropertyID: property.ID, RoomNumber: "10", Status: models.RoomOccupied, RentAmount: 600}
	require.NoError(t, db.Create(stale).Error)

	tenant := &models.Tenant{FirstName: "Pat", LastName: "Ng", Email: "pat@example.com"}
	require.NoError(t, db.Create(tenant).Error)

	expired := &models.Lease{
		TenantID:   tenant.ID,
		RoomID:     stale.ID,
		StartDate:  time.Now().AddDate(-2, 0, 0),
		EndDate:    time.Now().AddDate(-1, 0, 0),
		RentAmount: 600,
	}
	require.NoError(t, db.Create(expired).Error)

	reconciler := NewRoomReconciler(repository.NewPropertyRepository(db), time.Hour, quietLogger())
	reconciler.runOnce()

	var room models.Room
	require.NoError(t, db.First(&room, stale.ID).Error)
	assert.Equal(t, models.RoomVacant, room.Status)
}

func TestReconcilerDisabledWithZeroInterval(t *testing.T) {
	db := newTestDB(t)
	reconciler := NewRoomReconciler(repository.NewPropertyRepository(db), 0, quietLogger())

	reconciler.Start()
	// Stop must not block when the loop never started
	reconciler.Stop()
}
