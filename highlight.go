package pagehighlight

import (
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/geometry"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/match"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/token"
	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
	"github.com/kailas-cloud/pagehighlight/internal/ocrjson"
)

// Model types.
type (
	Document = ocr.Document
	Page     = ocr.Page
	Word     = ocr.Word
	Polygon  = ocr.Polygon
	Span     = ocr.Span
	Rect     = geometry.Rect
	Match    = match.Match
	Outcome  = match.Outcome
	Kind     = match.Kind
	Stats    = match.Stats
	Mode     = match.Mode
	Scope    = match.Scope
)

// Outcome kinds.
const (
	KindMatches      = match.KindMatches
	KindNotFound     = match.KindNotFound
	KindInvalidInput = match.KindInvalidInput
)

// Scopes.
const (
	ScopeCompat = match.Compat
	ScopeAll    = match.All
	ScopeFirst  = match.First
)

// Find searches doc for searchText.
// Blank search text yields KindInvalidInput; text without a single letter or
// digit yields KindNotFound. Neither scans the document.
func Find(searchText string, doc Document, opts ...Option) Outcome {
	cfg := newConfig(opts)
	return match.Find(token.Parse(searchText), doc, cfg.scope)
}

// Highlight decodes OCR JSON and searches it. Blank search text, empty data
// and invalid JSON yield KindInvalidInput; a document without a usable page
// list is searched as an empty one and yields KindNotFound.
func Highlight(searchText string, data []byte, opts ...Option) Outcome {
	q := token.Parse(searchText)
	if q.IsBlank() {
		return match.InvalidInput()
	}
	doc, err := Decode(data)
	if err != nil {
		return match.InvalidInput()
	}
	return match.Find(q, doc, newConfig(opts).scope)
}

// Decode parses OCR JSON. Errors wrap ErrInvalidInput and are returned only for
// empty input and invalid JSON; malformed structure decodes to a Document with
// no pages.
func Decode(data []byte) (Document, error) {
	doc, _, err := ocrjson.DecodeLenient(data)
	return doc, err
}

// DecodeStrict parses OCR JSON and reports malformed structure as an error
// wrapping ErrMalformedDocument.
func DecodeStrict(data []byte) (Document, error) {
	return ocrjson.Decode(data)
}

// Normalize lower-cases s and drops every rune that is not a letter or digit.
func Normalize(s string) string { return token.Normalize(s) }

// MergeBoundingBoxes returns the smallest rectangle covering every polygon.
// It panics when polys is empty.
func MergeBoundingBoxes(polys []Polygon) Rect { return geometry.MergeBoundingBoxes(polys) }
