// Package ocrjson decodes Azure Document Intelligence style OCR output into the typed ocr model.
//
// Accepted envelopes:
//
//	{"pages": [...]}
//	{"analyzeResult": {"pages": [...]}}
//	{"status": "succeeded", "analyzeResult": {"pages": [...]}}
package ocrjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/pagehighlight/internal/domain"
	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
)

// MalformedError wraps ErrMalformedDocument with the reason.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMalformedDocument.Error(), e.Reason)
}

func (e *MalformedError) Unwrap() error { return domain.ErrMalformedDocument }

func malformed(format string, args ...any) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// Decode parses data strictly.
// Empty input or invalid JSON syntax returns an error wrapping ErrInvalidInput.
// A missing page list or a page/word without required fields returns *MalformedError.
func Decode(data []byte) (ocr.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ocr.Document{}, domain.NewInvalidInput("json", "is empty")
	}

	var env envelopeDTO
	if err := json.Unmarshal(data, &env); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return ocr.Document{}, fmt.Errorf("%w: %w", domain.NewInvalidInput("json", "is not valid JSON"), err)
		}
		return ocr.Document{}, malformed("unexpected structure: %v", err)
	}

	pages := env.pages()
	if pages == nil {
		return ocr.Document{}, malformed("missing page list")
	}

	doc := ocr.Document{Pages: make([]ocr.Page, 0, len(*pages))}
	for i, p := range *pages {
		page, err := p.toDomain(i)
		if err != nil {
			return ocr.Document{}, err
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// Report describes a lenient decode.
type Report struct {
	Malformed bool
	Reason    string
}

// DecodeLenient parses data and recovers a malformed document as one with zero pages.
// Only empty input and invalid JSON syntax are returned as errors.
func DecodeLenient(data []byte) (ocr.Document, Report, error) {
	doc, err := Decode(data)
	if err == nil {
		return doc, Report{}, nil
	}
	var me *MalformedError
	if errors.As(err, &me) {
		return ocr.Document{}, Report{Malformed: true, Reason: me.Reason}, nil
	}
	return ocr.Document{}, Report{}, err
}
