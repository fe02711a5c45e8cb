package upload

import (
	"context"

	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
)

// Repository defines the storage contract for uploads.
type Repository interface {
	Save(ctx context.Context, u domupload.Upload, pdf, ocrJSON []byte) error
	Get(ctx context.Context, id string) (domupload.Upload, error)
	PDF(ctx context.Context, id string) ([]byte, error)
	JSON(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}
