// Package verbhash is the first resolution tier: a normalised map from verb
// surface forms (conjugations included) to template ids.
package verbhash

import (
	"sort"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// Table maps verb forms to template ids. It is immutable once built and safe
// for concurrent readers.
type Table struct {
	forms map[string]string
}

// New builds a table from a precomputed form → template id artifact. Keys are
// normalised; when two keys fold to the same form the later one in key order
// wins.
func New(artifact map[string]string) *Table {
	keys := make([]string, 0, len(artifact))
	for k := range artifact {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{forms: make(map[string]string, len(artifact))}
	for _, k := range keys {
		n := normalize.Key(k)
		if n == "" {
			continue
		}
		t.forms[n] = artifact[k]
	}
	return t
}

// Lookup returns the template id for text. Empty text always misses.
func (t *Table) Lookup(text string) (string, bool) {
	if t == nil {
		return "", false
	}
	n := normalize.Key(text)
	if n == "" {
		return "", false
	}
	id, ok := t.forms[n]
	return id, ok
}

// Has reports whether text resolves to a template.
func (t *Table) Has(text string) bool {
	_, ok := t.Lookup(text)
	return ok
}

// Size is the number of distinct forms.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.forms)
}

// VerbsForTemplate returns every form mapped to templateID, sorted. It scans
// the whole table and is meant for diagnostics.
func (t *Table) VerbsForTemplate(templateID string) []string {
	if t == nil {
		return nil
	}
	var out []string
	for form, id := range t.forms {
		if id == templateID {
			out = append(out, form)
		}
	}
	sort.Strings(out)
	return out
}

// TemplateIDs returns the distinct template ids the table maps to, sorted.
func (t *Table) TemplateIDs() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, id := range t.forms {
		seen[id] = true
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
