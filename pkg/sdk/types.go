package sdk

import (
	"time"

	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

// Scope selects which occurrences a search returns.
type Scope string

// Scopes.
const (
	// ScopeCompat returns every single-word occurrence but only the first phrase occurrence.
	ScopeCompat Scope = "compat"
	ScopeAll    Scope = "all"
	ScopeFirst  Scope = "first"
)

// Status tags a Result.
type Status string

// Result statuses.
const (
	StatusMatches      Status = Status(gen.MatchStatusMatches)
	StatusNotFound     Status = Status(gen.MatchStatusNotFound)
	StatusInvalidInput Status = Status(gen.MatchStatusInvalidInput)
)

// Rect is a bounding rectangle in page units.
type Rect struct {
	X, Y, Width, Height float64
}

// Match is one highlight region.
type Match struct {
	PageNumber int
	PageWidth  float64
	PageHeight float64
	SearchText string
	Rect       Rect
	WordIndex  int
	WordCount  int
}

// Result is the outcome of one search.
type Result struct {
	Status  Status
	Matches []Match
	Message string
}

// Err maps the status to ErrNotFound or ErrInvalidInput (nil for matches).
func (r Result) Err() error {
	switch r.Status {
	case StatusMatches:
		return nil
	case StatusNotFound:
		return ErrNotFound
	default:
		return ErrInvalidInput
	}
}

// MatchRequest searches an inline OCR document.
type MatchRequest struct {
	JSON       []byte
	SearchText string
	Scope      Scope
}

// BatchRequest runs several queries against one OCR document.
type BatchRequest struct {
	JSON    []byte
	Queries []string
	Scope   Scope
}

// BatchItem is the result of one batch query, in request order.
type BatchItem struct {
	SearchText string
	Result     Result
}

// UploadInput is a PDF and its OCR JSON. File names are optional.
type UploadInput struct {
	PDFName    string
	PDF        []byte
	JSONName   string
	JSON       []byte
	SearchText string
}

// UploadResult is returned by Upload.
type UploadResult struct {
	ID         string
	PDFURL     string
	JSON       string
	SearchText string
}

// Upload is stored upload metadata.
type Upload struct {
	ID         string
	PDFURL     string
	PDFName    string
	JSONName   string
	SearchText string
	PDFSize    int64
	JSONSize   int64
	CreatedAt  time.Time
}

// HealthStatus is the server health report.
type HealthStatus struct {
	Status  string
	Checks  map[string]string
	Version string
}

func fromMatchItems(items []gen.MatchItem) []Match {
	out := make([]Match, len(items))
	for i, it := range items {
		out[i] = Match{
			PageNumber: it.PageNumber,
			PageWidth:  it.PageWidth,
			PageHeight: it.PageHeight,
			SearchText: it.SearchText,
			Rect:       Rect{X: it.Polygon[0], Y: it.Polygon[1], Width: it.Polygon[2], Height: it.Polygon[3]},
			WordIndex:  it.WordIndex,
			WordCount:  it.WordCount,
		}
	}
	return out
}

func fromUpload(u gen.Upload) Upload {
	return Upload{
		ID:         u.ID,
		PDFURL:     u.PDFURL,
		PDFName:    u.PDFName,
		JSONName:   u.JSONName,
		SearchText: u.SearchText,
		PDFSize:    u.PDFSize,
		JSONSize:   u.JSONSize,
		CreatedAt:  time.UnixMilli(u.CreatedAt),
	}
}
