// Package normalize folds user-facing words (verbs, adverbs, part names) into
// the canonical form used as lookup keys throughout verbmotion.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key trims surrounding whitespace and case-folds s.
//
// A Caser is stateful, so a fresh one is built per call.
func Key(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// Words splits s on whitespace and returns the folded, non-empty fields.
func Words(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if k := Key(f); k != "" {
			out = append(out, k)
		}
	}
	return out
}
