// Package exports writes lead snapshots to object storage as CSV.
package exports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"crm_backend/internal/adapters/storage"
	"crm_backend/platform/apperr"
	"crm_backend/platform/logger"
)

const (
	exportFolder      = "leads"
	exportContentType = "text/csv"
	msgUnavailable    = "Lead exports are not configured"
)

// LeadSource yields the live leads to export.
type LeadSource interface {
	ExportRows(ctx context.Context) ([]Row, error)
}

// ExportResponse points at the uploaded file.
type ExportResponse struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	RowCount  int       `json:"row_count"`
}

type Service struct {
	leads   LeadSource
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
	now     func() time.Time
}

// NewService builds the export service. A nil store leaves exports disabled
// and every call returns an Unavailable error.
func NewService(leads LeadSource, store storage.StorageService, bucket string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		leads:   leads,
		storage: store,
		bucket:  bucket,
		log:     log,
		now:     time.Now,
	}
}

func (s *Service) ExportLeads(ctx context.Context) (ExportResponse, error) {
	if s.storage == nil || s.bucket == "" {
		return ExportResponse{}, apperr.Unavailable(msgUnavailable)
	}

	rows, err := s.leads.ExportRows(ctx)
	if err != nil {
		return ExportResponse{}, err
	}

	var buf bytes.Buffer
	if err := writeRows(&buf, rows); err != nil {
		return ExportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to render lead export", err)
	}

	fileName := fmt.Sprintf("leads-%s.csv", s.now().UTC().Format("20060102-150405"))
	size := int64(buf.Len())
	key, err := s.storage.UploadFile(ctx, s.bucket, exportFolder, fileName, exportContentType, &buf, size)
	if err != nil {
		s.log.Error("lead export upload failed", "bucket", s.bucket, "error", err)
		return ExportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store lead export", err)
	}

	presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, key)
	if err != nil {
		s.log.Error("lead export presign failed", "object_key", key, "error", err)
		return ExportResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign lead export url", err)
	}

	s.log.WithContext(ctx).Info("lead export written", "object_key", key, "rows", len(rows), "bytes", size)

	return ExportResponse{
		ObjectKey: key,
		URL:       presigned.URL,
		ExpiresAt: presigned.ExpiresAt,
		RowCount:  len(rows),
	}, nil
}
