// Package sentence extracts the verb, manner adverb and target part from a
// short imperative phrase.
package sentence

import (
	"strings"
	"unicode"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// Parsed is the extraction result. Empty fields mean "not found".
type Parsed struct {
	RawText    string `json:"raw_text"`
	Verb       string `json:"verb,omitempty"`
	Adverb     string `json:"adverb,omitempty"`
	TargetPart string `json:"target_part,omitempty"`
}

// Parser turns raw text into a Parsed sentence.
type Parser interface {
	Parse(text string) Parsed
}

// Verbs reports whether a word is a known verb form.
type Verbs interface {
	Has(text string) bool
}

// Adverbs reports whether a word is a known adverb.
type Adverbs interface {
	IsKnownAdverb(text string) bool
}

// RuleParser is a word-list heuristic parser. The verb is the first word the
// verb vocabulary knows, else the first content word. The adverb is the
// first known adverb, else the first "-ly" word. The target part is the
// word after a possessive ("its tail", "the dog's head").
type RuleParser struct {
	verbs   Verbs
	adverbs Adverbs
}

// NewRuleParser returns a parser. Either vocabulary may be nil.
func NewRuleParser(verbs Verbs, adverbs Adverbs) *RuleParser {
	return &RuleParser{verbs: verbs, adverbs: adverbs}
}

var stopwords = setOf(
	"a", "an", "the", "this", "that", "these", "those",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them",
	"please", "make", "let", "lets", "let's", "can", "could", "should", "would",
	"will", "must", "do", "does", "to", "and", "or", "now", "then", "again",
	"is", "are", "be", "very", "really", "around", "up", "down", "with", "of",
	"in", "on", "at", "its", "his", "her", "their", "my", "your", "our",
)

var possessives = setOf("its", "his", "her", "their", "my", "your", "our")

// -ly words that are not manner adverbs.
var notAdverbs = setOf("only", "family", "fly", "lily", "belly", "jelly", "rely", "reply", "apply", "ally", "early")

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Parse implements Parser.
func (p *RuleParser) Parse(text string) Parsed {
	out := Parsed{RawText: text}
	words := tokens(text)

	verbAt := -1
	for i, w := range words {
		if p.verbs != nil && p.verbs.Has(w) {
			verbAt = i
			break
		}
	}
	if verbAt < 0 {
		for i, w := range words {
			if !stopwords[w] && !p.isAdverb(w) && !strings.HasSuffix(w, "'s") {
				verbAt = i
				break
			}
		}
	}
	if verbAt >= 0 {
		out.Verb = words[verbAt]
	}

	for i, w := range words {
		if i != verbAt && p.isAdverb(w) {
			out.Adverb = w
			break
		}
	}

	for i, w := range words {
		if !possessives[w] && !strings.HasSuffix(w, "'s") {
			continue
		}
		for _, next := range words[i+1:] {
			if stopwords[next] || p.isAdverb(next) {
				continue
			}
			out.TargetPart = next
			break
		}
		if out.TargetPart != "" {
			break
		}
	}
	return out
}

func (p *RuleParser) isAdverb(w string) bool {
	if p.adverbs != nil && p.adverbs.IsKnownAdverb(w) {
		return true
	}
	return len(w) > 4 && strings.HasSuffix(w, "ly") && !notAdverbs[w]
}

// tokens folds text and strips punctuation other than inner apostrophes.
func tokens(text string) []string {
	var out []string
	for _, w := range normalize.Words(text) {
		w = strings.Map(func(r rune) rune {
			if r == '’' {
				return '\''
			}
			return r
		}, w)
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
