package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
	"github.com/kailas-cloud/pagehighlight/internal/metrics"
)

// Input is a PDF plus its OCR JSON as received from a client.
type Input struct {
	PDFName    string
	PDF        []byte
	JSONName   string
	JSON       []byte
	SearchText string
}

// Result is the stored upload together with its OCR JSON, echoed back to the client.
type Result struct {
	Upload domupload.Upload
	JSON   string
}

// Service stores and serves uploads.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an upload service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Save validates and stores both files under a fresh ID.
// Both files are required.
func (s *Service) Save(ctx context.Context, in Input) (Result, error) {
	if len(in.PDF) == 0 || len(in.JSON) == 0 {
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		return Result{}, domain.NewInvalidInput("files", "both PDF and JSON are required")
	}

	u, err := domupload.New(
		s.newID(), in.PDFName, in.JSONName, in.SearchText,
		int64(len(in.PDF)), int64(len(in.JSON)), s.now().UnixMilli(),
	)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		return Result{}, domain.NewInvalidInput("upload", err.Error())
	}

	if err := s.repo.Save(ctx, u, in.PDF, in.JSON); err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("store upload: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()

	s.logger.Info("Upload stored",
		zap.String("upload_id", u.ID()),
		zap.String("pdf_name", u.PDFName()),
		zap.Int64("pdf_bytes", u.PDFSize()),
		zap.Int64("json_bytes", u.JSONSize()),
	)

	return Result{Upload: u, JSON: string(in.JSON)}, nil
}

// Get returns upload metadata.
func (s *Service) Get(ctx context.Context, id string) (domupload.Upload, error) {
	if err := domupload.ValidateID(id); err != nil {
		return domupload.Upload{}, fmt.Errorf("upload %q: %w", id, domain.ErrUploadNotFound)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domupload.Upload{}, fmt.Errorf("get upload: %w", err)
	}
	return u, nil
}

// PDF returns the upload metadata and the stored PDF bytes.
func (s *Service) PDF(ctx context.Context, id string) (domupload.Upload, []byte, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return domupload.Upload{}, nil, err
	}
	data, err := s.repo.PDF(ctx, id)
	if err != nil {
		return domupload.Upload{}, nil, fmt.Errorf("get upload pdf: %w", err)
	}
	return u, data, nil
}

// JSON returns the stored OCR JSON bytes.
func (s *Service) JSON(ctx context.Context, id string) ([]byte, error) {
	if err := domupload.ValidateID(id); err != nil {
		return nil, fmt.Errorf("upload %q: %w", id, domain.ErrUploadNotFound)
	}
	data, err := s.repo.JSON(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get upload json: %w", err)
	}
	return data, nil
}

// Delete removes an upload. Deleting a missing upload reports ErrUploadNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}
