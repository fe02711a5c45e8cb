package pagehighlight

import "github.com/kailas-cloud/pagehighlight/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check; Outcome.Err maps outcomes onto them.
var (
	ErrInvalidInput      = domain.ErrInvalidInput
	ErrNotFound          = domain.ErrNotFound
	ErrMalformedDocument = domain.ErrMalformedDocument
	ErrUploadNotFound    = domain.ErrUploadNotFound
	ErrBatchTooLarge     = domain.ErrBatchTooLarge
)
