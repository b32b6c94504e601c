// Package match evaluates glob patterns against object keys.
package match

import (
	"errors"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher filters object keys with include and exclude glob patterns:
//   - Include patterns: a key must match at least one (empty means all)
//   - Exclude patterns: a key must not match any
//
// Patterns use doublestar syntax, so "**" crosses key separators.
// A Matcher is safe for concurrent use after creation.
type Matcher struct {
	includes []string
	excludes []string
}

// Errors returned by Matcher operations.
var (
	// ErrInvalidPattern is returned when a pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// PatternError wraps pattern-related errors with context.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// New creates a Matcher from include and exclude patterns.
// Returns an error if any pattern cannot be compiled.
func New(includes, excludes []string) (*Matcher, error) {
	for _, p := range append(append([]string{}, includes...), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, &PatternError{Pattern: p, Err: ErrInvalidPattern}
		}
	}
	return &Matcher{includes: includes, excludes: excludes}, nil
}

// Match reports whether the key passes the include and exclude patterns.
func (m *Matcher) Match(key string) bool {
	if len(m.includes) > 0 {
		included := false
		for _, p := range m.includes {
			if ok, _ := doublestar.Match(p, key); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, p := range m.excludes {
		if ok, _ := doublestar.Match(p, key); ok {
			return false
		}
	}
	return true
}
