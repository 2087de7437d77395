package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FileStore abstracts where lease document files live. The service stores
// files under a generated unique name and keeps the original name in the
// database for display.
type FileStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (storedName string, path string, err error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// LocalStore implements FileStore on the local filesystem
type LocalStore struct {
	basePath string
	logger   *logrus.Logger
}

// NewLocalStore creates a local filesystem store rooted at basePath
func NewLocalStore(basePath string, logger *logrus.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if basePath == "" {
		return nil, fmt.Errorf("base path is required for local store")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// Save writes the content under a uuid-based name that keeps the original
// extension, and returns the generated name and full path
func (s *LocalStore) Save(ctx context.Context, originalName string, content io.Reader) (string, string, error) {
	storedName := uuid.New().String() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.basePath, storedName)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(fullPath)
		return "", "", fmt.Errorf("failed to write content: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"original": originalName,
		"stored":   storedName,
	}).Info("Stored lease document file")

	return storedName, fullPath, nil
}

// Open returns a reader over the stored file
func (s *LocalStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the stored file
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
