package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	userID, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, store.Delete(ctx, sessionID))

	_, err = store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiresSessions(t *testing.T) {
	store := NewMemoryStore(time.Nanosecond)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 42)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 7)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	userID, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestMemoryStoreIDsAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	first, err := store.Create(ctx, 1)
	require.NoError(t, err)
	second, err := store.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
