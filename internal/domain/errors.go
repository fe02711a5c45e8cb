package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals missing or empty search text or document input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a completed scan with zero matches.
	ErrNotFound = errors.New("not found")
	// ErrMalformedDocument signals an OCR document without a usable page list.
	// It is recovered locally and never reaches the transport.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUploadNotFound signals a missing stored upload.
	ErrUploadNotFound = errors.New("upload not found")
	// ErrBatchTooLarge signals a batch request above the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

// InvalidInputError wraps ErrInvalidInput with the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an invalid input error for a field.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
