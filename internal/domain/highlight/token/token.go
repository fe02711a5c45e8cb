// Package token turns raw text into comparable search tokens.
package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Query is a parsed search phrase.
type Query struct {
	raw    string
	tokens []string
}

// Normalize lowercases s and keeps only letters and decimal digits.
// Returns "" for empty or whitespace-only input.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	// A Caser keeps state between calls, so each call gets its own.
	lower := cases.Lower(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, lower)
}

// Parse splits raw on space, tab, CR and LF and normalizes every piece.
// Pieces that normalize to "" are dropped; order is preserved.
func Parse(raw string) Query {
	pieces := strings.FieldsFunc(raw, isSeparator)
	tokens := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if t := Normalize(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return Query{raw: raw, tokens: tokens}
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Raw returns the original search text.
func (q Query) Raw() string { return q.raw }

// Tokens returns the normalized tokens in query order.
func (q Query) Tokens() []string { return q.tokens }

// Len returns the number of tokens.
func (q Query) Len() int { return len(q.tokens) }

// IsBlank reports whether the original text is empty or whitespace only.
func (q Query) IsBlank() bool { return strings.TrimSpace(q.raw) == "" }

// IsEmpty reports whether the query has no tokens.
func (q Query) IsEmpty() bool { return len(q.tokens) == 0 }

// IsSingleWord reports whether the query has exactly one token.
func (q Query) IsSingleWord() bool { return len(q.tokens) == 1 }
