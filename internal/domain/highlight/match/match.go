// Package match finds search phrases in OCR word sequences.
package match

import (
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/geometry"
	"github.com/kailas-cloud/pagehighlight/internal/domain/highlight/token"
	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
)

// Find scans doc for q and returns the matches allowed by scope.
//
// A run matches when consecutive words of one page normalize to the query
// tokens in order, one word per token. Pages are scanned in order, then start
// indices in order; a mismatch abandons only the current start index.
// Blank search text is rejected as invalid input; text without a single
// token yields NotFound. Neither scans the document.
func Find(q token.Query, doc ocr.Document, scope Scope) Outcome {
	if q.IsBlank() {
		return InvalidInput()
	}
	if q.IsEmpty() {
		return NotFound(Stats{Mode: NoTokens})
	}
	if !scope.IsValid() {
		scope = Compat
	}

	tokens := q.Tokens()
	stopAtFirst := scope.stopsAtFirst(len(tokens))
	stats := Stats{Mode: modeFor(len(tokens))}

	var matches []Match
	for pi := range doc.Pages {
		page := &doc.Pages[pi]
		stats.PagesScanned++

		words := newPageWords(page.Words)
		for i := range page.Words {
			polys, ok := matchAt(words, i, tokens)
			if !ok {
				continue
			}
			matches = append(matches, New(
				page.Number, page.Width, page.Height,
				q.Raw(), geometry.MergeBoundingBoxes(polys),
				i, len(tokens),
			))
			if stopAtFirst {
				stats.WordsNormalized += words.normalized
				return Found(matches, stats)
			}
		}
		stats.WordsNormalized += words.normalized
	}

	return Found(matches, stats)
}

// matchAt tries to consume every token starting at word i.
func matchAt(words *pageWords, i int, tokens []string) ([]ocr.Polygon, bool) {
	if i+len(tokens) > words.len() {
		return nil, false
	}
	polys := make([]ocr.Polygon, 0, len(tokens))
	for k, tok := range tokens {
		j := i + k
		if words.text(j) != tok {
			return nil, false
		}
		polys = append(polys, words.polygon(j))
	}
	return polys, true
}

// pageWords normalizes word contents on first access.
type pageWords struct {
	words      []ocr.Word
	norm       []string
	done       []bool
	normalized int
}

func newPageWords(words []ocr.Word) *pageWords {
	return &pageWords{
		words: words,
		norm:  make([]string, len(words)),
		done:  make([]bool, len(words)),
	}
}

func (p *pageWords) len() int { return len(p.words) }

func (p *pageWords) text(i int) string {
	if !p.done[i] {
		p.norm[i] = token.Normalize(p.words[i].Content)
		p.done[i] = true
		p.normalized++
	}
	return p.norm[i]
}

func (p *pageWords) polygon(i int) ocr.Polygon { return p.words[i].Polygon }
