// Package glob binds template part rules to skeleton part names.
//
// A pattern is one or more alternatives joined by " OR "; each alternative is
// a literal string in which '*' matches zero or more characters. Matching is
// case-insensitive and whole-name, and so is the OR separator.
package glob

import (
	"errors"
	"strings"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// ErrEmptyPattern is returned by ValidatePattern for a blank pattern.
var ErrEmptyPattern = errors.New("empty glob pattern")

const orSeparator = "OR"

// Alternatives splits pattern on its top-level OR combinator, in any case.
func Alternatives(pattern string) []string {
	fields := strings.Fields(pattern)
	var (
		out []string
		cur []string
	)
	for _, f := range fields {
		if strings.EqualFold(f, orSeparator) {
			out = append(out, strings.Join(cur, " "))
			cur = cur[:0]
			continue
		}
		cur = append(cur, f)
	}
	return append(out, strings.Join(cur, " "))
}

// Match reports whether name satisfies pattern. The first satisfied
// alternative wins.
func Match(name, pattern string) bool {
	n := normalize.Key(name)
	for _, alt := range Alternatives(pattern) {
		if alt == "" {
			continue
		}
		if wildcard(n, normalize.Key(alt)) {
			return true
		}
	}
	return false
}

// ValidatePattern rejects patterns that can never be meaningful.
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return ErrEmptyPattern
	}
	for _, alt := range Alternatives(pattern) {
		if alt == "" {
			return errors.New("glob pattern has an empty OR alternative")
		}
	}
	return nil
}

// FindMatchingParts returns the names matching pattern, in input order.
func FindMatchingParts(names []string, pattern string) []string {
	var out []string
	for _, n := range names {
		if Match(n, pattern) {
			out = append(out, n)
		}
	}
	return out
}

// wildcard matches s against p where '*' spans any run of bytes.
func wildcard(s, p string) bool {
	si, pi := 0, 0
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && p[pi] == '*':
			star = pi
			mark = si
			pi++
		case pi < len(p) && p[pi] == s[si]:
			si++
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
