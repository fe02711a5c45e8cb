package match

import (
	"github.com/kailas-cloud/pagehighlight/internal/domain"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/geometry"
)

// Match is one highlighted span on a page.
type Match struct {
	pageNumber int
	pageWidth  float64
	pageHeight float64
	searchText string
	rect       geometry.Rect
	wordIndex  int
	wordCount  int
}

// New creates a match.
func New(
	pageNumber int, pageWidth, pageHeight float64,
	searchText string, rect geometry.Rect,
	wordIndex, wordCount int,
) Match {
	return Match{
		pageNumber: pageNumber, pageWidth: pageWidth, pageHeight: pageHeight,
		searchText: searchText, rect: rect,
		wordIndex: wordIndex, wordCount: wordCount,
	}
}

// PageNumber returns the 1-based page number.
func (m *Match) PageNumber() int { return m.pageNumber }

// PageWidth returns the page width in page-space units.
func (m *Match) PageWidth() float64 { return m.pageWidth }

// PageHeight returns the page height in page-space units.
func (m *Match) PageHeight() float64 { return m.pageHeight }

// SearchText returns the original, non-normalized query.
func (m *Match) SearchText() string { return m.searchText }

// Rect returns the bounding rectangle of the matched words.
func (m *Match) Rect() geometry.Rect { return m.rect }

// WordIndex returns the index of the first matched word on its page.
func (m *Match) WordIndex() int { return m.wordIndex }

// WordCount returns the number of matched words.
func (m *Match) WordCount() int { return m.wordCount }

// Kind tags an Outcome.
type Kind string

// Outcome kinds.
const (
	KindMatches      Kind = "matches"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Stats describes the work done by a scan.
type Stats struct {
	Mode            Mode
	PagesScanned    int
	WordsNormalized int
}

// Outcome is the result of a search: matches, not found, or invalid input.
// Matches is non-empty exactly when Kind is KindMatches.
type Outcome struct {
	kind    Kind
	matches []Match
	stats   Stats
}

// Found creates a matches outcome. An empty list becomes NotFound.
func Found(matches []Match, stats Stats) Outcome {
	if len(matches) == 0 {
		return NotFound(stats)
	}
	return Outcome{kind: KindMatches, matches: matches, stats: stats}
}

// NotFound creates a not-found outcome.
func NotFound(stats Stats) Outcome {
	return Outcome{kind: KindNotFound, stats: stats}
}

// InvalidInput creates an invalid-input outcome.
func InvalidInput() Outcome {
	return Outcome{kind: KindInvalidInput, stats: Stats{Mode: NoTokens}}
}

// Kind returns the outcome tag.
func (o Outcome) Kind() Kind { return o.kind }

// Matches returns the collected matches in page order, then word order.
func (o Outcome) Matches() []Match { return o.matches }

// Stats returns scan statistics.
func (o Outcome) Stats() Stats { return o.stats }

// Err maps the outcome to a domain sentinel (nil for matches).
func (o Outcome) Err() error {
	switch o.kind {
	case KindMatches:
		return nil
	case KindNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrInvalidInput
	}
}
