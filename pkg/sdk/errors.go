package sdk

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrNotFound        = domain.ErrNotFound
	ErrUploadNotFound  = domain.ErrUploadNotFound
	ErrBatchTooLarge   = domain.ErrBatchTooLarge
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrServer          = errors.New("server error")
)

// APIError is a non-2xx response that is not a search outcome.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("pagehighlight: http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("pagehighlight: %s: %s", e.Code, e.Message)
}

// Unwrap maps the response code to a sentinel.
func (e *APIError) Unwrap() error {
	switch gen.ErrorResponseCode(e.Code) {
	case gen.ErrorResponseCodeValidationFailed, gen.ErrorResponseCodeBadRequest:
		return ErrInvalidInput
	case gen.ErrorResponseCodeUploadNotFound:
		return ErrUploadNotFound
	case gen.ErrorResponseCodeBatchTooLarge:
		return ErrBatchTooLarge
	case gen.ErrorResponseCodePayloadTooLarge:
		return ErrPayloadTooLarge
	case gen.ErrorResponseCodeUnauthorized:
		return ErrUnauthorized
	}
	if e.StatusCode >= 500 {
		return ErrServer
	}
	return nil
}
