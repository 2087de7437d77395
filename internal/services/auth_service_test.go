package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/session"
)

func newTestAuthService(t *testing.T) (*AuthService, session.Store) {
	t.Helper()
	db := newTestDB(t)
	store := session.NewMemoryStore(time.Hour)
	return NewAuthService(repository.NewUserRepository(db), store, quietLogger()), store
}

func TestRegisterSignsIn(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	user, sessionID, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Torres",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")

	userID, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Torres",
	}
	_, _, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	user, sessionID, err := svc.Login(ctx, "agent@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", user.Email)

	userID, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "agent@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDestroysSession(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	_, sessionID, err := svc.Register(ctx, &models.RegisterRequest{
		Email:     "agent@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ana",
		LastName:  "Torres",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sessionID))

	_, err = store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
