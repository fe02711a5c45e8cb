package match

// Scope controls how many occurrences a search collects.
type Scope string

// Scope constants.
const (
	// Compat collects every single-word occurrence but stops a multi-word
	// search at the first contiguous run.
	Compat Scope = "compat"
	// All collects every occurrence regardless of token count.
	All Scope = "all"
	// First stops at the first occurrence regardless of token count.
	First Scope = "first"
)

// IsValid checks if the scope is one of the supported values.
func (s Scope) IsValid() bool {
	return s == Compat || s == All || s == First
}

// ParseScope maps an empty string to Compat and rejects unknown values.
func ParseScope(s string) (Scope, bool) {
	if s == "" {
		return Compat, true
	}
	sc := Scope(s)
	return sc, sc.IsValid()
}

// stopsAtFirst reports whether the scan ends after the first run for a query of n tokens.
func (s Scope) stopsAtFirst(n int) bool {
	switch s {
	case All:
		return false
	case First:
		return true
	default:
		return n > 1
	}
}

// Mode names the matching strategy selected by the token count.
type Mode string

// Mode constants.
const (
	SingleWord Mode = "single"
	MultiWord  Mode = "multi"
	NoTokens   Mode = "none"
)

func modeFor(n int) Mode {
	switch {
	case n == 0:
		return NoTokens
	case n == 1:
		return SingleWord
	default:
		return MultiWord
	}
}
