// Package api holds the HTTP wire types and the chi route table for the pagehighlight API.
package api

import (
	"encoding/json"
	"fmt"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// ErrorResponseCode values.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUploadNotFound   ErrorResponseCode = "upload_not_found"
	ErrorResponseCodeBatchTooLarge    ErrorResponseCode = "batch_too_large"
	ErrorResponseCodePayloadTooLarge  ErrorResponseCode = "payload_too_large"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response except match outcomes.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// UploadID is the path parameter addressing a stored upload.
type UploadID = string

// MatchStatus tags a match response.
type MatchStatus string

// MatchStatus values.
const (
	MatchStatusMatches      MatchStatus = "matches"
	MatchStatusNotFound     MatchStatus = "not_found"
	MatchStatusInvalidInput MatchStatus = "invalid_input"
)

// OCRDocument is the OCR JSON as sent by a client: either a JSON string holding
// the document (the legacy form) or the document object itself.
type OCRDocument []byte

// UnmarshalJSON accepts a string or any other JSON value. null stays empty.
func (d *OCRDocument) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		*d = []byte(s)
		return nil
	}
	*d = append((*d)[:0], data...)
	return nil
}

// MarshalJSON emits the document as an object when it holds valid JSON.
func (d OCRDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	if json.Valid(d) {
		return d, nil
	}
	return json.Marshal(string(d))
}

// ProcessJSONRequest is the body of POST /pdf/process-json.
type ProcessJSONRequest struct {
	JSON       OCRDocument `json:"json"`
	SearchText string      `json:"searchText"`
	Scope      *string     `json:"scope,omitempty"`
}

// ProcessBatchRequest is the body of POST /pdf/process-batch.
type ProcessBatchRequest struct {
	JSON    OCRDocument `json:"json"`
	Queries []string    `json:"queries"`
	Scope   *string     `json:"scope,omitempty"`
}

// MatchItem is one highlight region. Polygon is [x, y, width, height] in page units.
type MatchItem struct {
	PageNumber int        `json:"pageNumber"`
	PageWidth  float64    `json:"pageWidth"`
	PageHeight float64    `json:"pageHeight"`
	SearchText string     `json:"searchText"`
	Polygon    [4]float64 `json:"polygon"`
	WordIndex  int        `json:"wordIndex"`
	WordCount  int        `json:"wordCount"`
}

// MatchResponse is the outcome of one search.
type MatchResponse struct {
	Status  MatchStatus `json:"status"`
	Items   []MatchItem `json:"items"`
	Message string      `json:"message,omitempty"`
}

// BatchResultItem is one query's outcome inside a batch.
type BatchResultItem struct {
	SearchText string      `json:"searchText"`
	Status     MatchStatus `json:"status"`
	Items      []MatchItem `json:"items"`
}

// BatchResponse is the body returned by POST /pdf/process-batch.
type BatchResponse struct {
	Items []BatchResultItem `json:"items"`
}

// UploadResponse mirrors the upload form result: where to fetch the PDF, the
// OCR JSON echoed back and the submitted search text.
type UploadResponse struct {
	ID           string `json:"id"`
	PDFURL       string `json:"pdfUrl"`
	JSON         string `json:"json"`
	SearchString string `json:"searchString"`
}

// Upload describes stored upload metadata.
type Upload struct {
	ID         string `json:"id"`
	PDFURL     string `json:"pdfUrl"`
	PDFName    string `json:"pdfName"`
	JSONName   string `json:"jsonName"`
	SearchText string `json:"searchText"`
	PDFSize    int64  `json:"pdfSize"`
	JSONSize   int64  `json:"jsonSize"`
	CreatedAt  int64  `json:"createdAt"`
}

// MatchUploadParams are the query parameters of GET /uploads/{id}/matches.
type MatchUploadParams struct {
	// Q is the search text.
	Q string `form:"q" json:"q"`
	// Scope is compat, all or first.
	Scope *string `form:"scope,omitempty" json:"scope,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
