package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
	"github.com/abhigdrv/tenantpro/internal/storage"
)

// allowedDocumentExts is the upload allowlist: images, PDF and document files
var allowedDocumentExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// DocumentUpload is one file submitted alongside a lease form, positionally
// paired with its document type and description
type DocumentUpload struct {
	FileName     string
	Size         int64
	Content      io.Reader
	DocumentType string
	Description  string
}

// LeaseService owns the lease lifecycle: the room status flips atomically
// with lease creation/deletion, and attached document files follow the lease.
// File removal is best-effort by policy; it never blocks a database mutation.
type LeaseService struct {
	leases      *repository.LeaseRepository
	store       storage.FileStore
	maxFileSize int64
	logger      *logrus.Logger
}

// NewLeaseService creates a new lease service
func NewLeaseService(leases *repository.LeaseRepository, store storage.FileStore, maxFileSize int64, logger *logrus.Logger) *LeaseService {
	if logger == nil {
		logger = logrus.New()
	}
	return &LeaseService{
		leases:      leases,
		store:       store,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ValidateUpload rejects files outside the type allowlist or over the size cap
func (s *LeaseService) ValidateUpload(upload *DocumentUpload) error {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if !allowedDocumentExts[ext] {
		return fmt.Errorf("file type %q is not allowed", ext)
	}
	if s.maxFileSize > 0 && upload.Size > s.maxFileSize {
		return fmt.Errorf("file %q exceeds the maximum size of %d bytes", upload.FileName, s.maxFileSize)
	}
	return nil
}

// Create inserts the lease, marks its room occupied in the same transaction,
// then attaches any uploaded documents
func (s *LeaseService) Create(ctx context.Context, lease *models.Lease, uploads []DocumentUpload) error {
	for i := range uploads {
		if err := s.ValidateUpload(&uploads[i]); err != nil {
			return err
		}
	}

	if err := s.leases.CreateWithRoom(ctx, lease); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"lease_id": lease.ID,
		"room_id":  lease.RoomID,
	}).Info("Created lease and marked room occupied")

	s.attachDocuments(ctx, lease.ID, uploads)
	return nil
}

// Update saves the lease and attaches any newly uploaded documents
func (s *LeaseService) Update(ctx context.Context, lease *models.Lease, uploads []DocumentUpload) error {
	for i := range uploads {
		if err := s.ValidateUpload(&uploads[i]); err != nil {
			return err
		}
	}

	if err := s.leases.Update(ctx, lease); err != nil {
		return err
	}

	s.attachDocuments(ctx, lease.ID, uploads)
	return nil
}

// attachDocuments stores each uploaded file and records its row. A failed
// file store logs and skips that document rather than failing the lease write.
func (s *LeaseService) attachDocuments(ctx context.Context, leaseID uint, uploads []DocumentUpload) {
	for i := range uploads {
		upload := &uploads[i]
		storedName, path, err := s.store.Save(ctx, upload.FileName, upload.Content)
		if err != nil {
			s.logger.WithError(err).WithField("file", upload.FileName).
				Error("Failed to store lease document file, skipping")
			continue
		}

		doc := &models.LeaseDocument{
			LeaseID:      leaseID,
			DocumentType: upload.DocumentType,
			FileName:     upload.FileName,
			StoredName:   storedName,
			FilePath:     path,
			Description:  upload.Description,
		}
		if err := s.leases.CreateDocument(ctx, doc); err != nil {
			s.logger.WithError(err).WithField("file", upload.FileName).
				Error("Failed to record lease document, removing stored file")
			if rmErr := s.store.Delete(ctx, path); rmErr != nil {
				s.logger.WithError(rmErr).WithField("path", path).
					Warn("Failed to remove orphaned document file")
			}
		}
	}
}

// Delete removes the lease: document files go first (best-effort), then one
// transaction releases the room and deletes documents, payments and the lease
func (s *LeaseService) Delete(ctx context.Context, id uint) error {
	lease, err := s.leases.GetBasic(ctx, id)
	if err != nil {
		return err
	}

	docs, err := s.leases.ListDocuments(ctx, id)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.store.Delete(ctx, doc.FilePath); err != nil {
			s.logger.WithError(err).WithField("path", doc.FilePath).
				Warn("Failed to delete lease document file, continuing")
		}
	}

	if err := s.leases.DeleteWithRoom(ctx, lease); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"lease_id": id,
		"room_id":  lease.RoomID,
	}).Info("Deleted lease and released room")
	return nil
}

// DeleteDocument removes one attached document: file first (best-effort),
// then the row
func (s *LeaseService) DeleteDocument(ctx context.Context, docID uint) error {
	doc, err := s.leases.GetDocument(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.FilePath); err != nil {
		s.logger.WithError(err).WithField("path", doc.FilePath).
			Warn("Failed to delete document file, continuing")
	}

	return s.leases.DeleteDocument(ctx, docID)
}

// OpenDocument returns the document row and a reader over its stored file
func (s *LeaseService) OpenDocument(ctx context.Context, docID uint) (*models.LeaseDocument, io.ReadCloser, error) {
	doc, err := s.leases.GetDocument(ctx, docID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}
