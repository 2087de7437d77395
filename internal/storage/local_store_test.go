package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store, err := NewLocalStore(t.TempDir(), logger)
	require.NoError(t, err)
	return store
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	storedName, path, err := store.Save(ctx, "contract.pdf", strings.NewReader("lease terms"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(storedName, ".pdf"))
	assert.NotEqual(t, "contract.pdf", storedName)

	reader, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "lease terms", string(content))

	require.NoError(t, store.Delete(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, _, err := store.Save(ctx, "scan.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, _, err := store.Save(ctx, "scan.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStoreRequiresBasePath(t *testing.T) {
	_, err := NewLocalStore("", nil)
	assert.Error(t, err)
}

func TestLocalStoreDeleteMissingFile(t *testing.T) {
	store := newTestStore(t)
	err := store.Delete(context.Background(), "/nonexistent/file.pdf")
	assert.Error(t, err)
}
