// Package library owns the loaded template set and the anchor verb index
// derived from it.
package library

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/normalize"
	"github.com/kamusis/verbmotion/internal/parser"
)

// Warning is one load-time issue, attributed to a template.
type Warning struct {
	TemplateID string          `json:"template_id"`
	Severity   parser.Severity `json:"severity"`
	Message    string          `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.TemplateID, w.Message)
}

// Validator checks a template without parsing it against a skeleton.
type Validator interface {
	Validate(t *motion.Template) []parser.Issue
}

// Library is a set of templates keyed by id plus a verb → template id index.
// Reads may run concurrently; Load, Reload and Clear are single-writer.
type Library struct {
	validator Validator
	logger    *zap.Logger

	mu        sync.RWMutex
	templates map[string]*motion.Template
	anchors   map[string]string
}

// New builds an empty library.
func New(v Validator, logger *zap.Logger) *Library {
	if v == nil {
		v = parser.New(nil, nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		validator: v,
		logger:    logger,
		templates: map[string]*motion.Template{},
		anchors:   map[string]string{},
	}
}

// LoadTemplates adds templates to the library. Templates with error-severity
// issues are skipped. A template replaces any earlier one with the same id;
// an anchor verb already claimed by another template moves to the later one
// with a collision warning.
func (l *Library) LoadTemplates(templates []motion.Template) []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(l.templates, l.anchors, templates)
}

// Reload replaces the whole library with templates. Readers see either the
// previous set or the new one.
func (l *Library) Reload(templates []motion.Template) []Warning {
	nextT := map[string]*motion.Template{}
	nextA := map[string]string{}
	warnings := l.load(nextT, nextA, templates)

	l.mu.Lock()
	l.templates = nextT
	l.anchors = nextA
	l.mu.Unlock()
	return warnings
}

func (l *Library) load(dstT map[string]*motion.Template, dstA map[string]string, templates []motion.Template) []Warning {
	var warnings []Warning
	for i := range templates {
		t := templates[i]
		issues := l.validator.Validate(&t)
		for _, is := range issues {
			warnings = append(warnings, Warning{TemplateID: t.ID, Severity: is.Severity, Message: is.Message})
		}
		if parser.HasErrors(issues) {
			l.logger.Warn("template excluded", zap.String("template", t.ID), zap.Int("issues", len(issues)))
			continue
		}

		if prev, ok := dstT[t.ID]; ok {
			// Verbs claimed only by the replaced definition are released.
			for _, v := range prev.AnchorVerbs {
				if k := normalize.Key(v); dstA[k] == t.ID {
					delete(dstA, k)
				}
			}
		}
		dstT[t.ID] = &t

		for _, v := range t.AnchorVerbs {
			k := normalize.Key(v)
			if k == "" {
				continue
			}
			if owner, ok := dstA[k]; ok && owner != t.ID {
				warnings = append(warnings, Warning{
					TemplateID: t.ID,
					Severity:   parser.SeverityWarning,
					Message:    fmt.Sprintf("anchor verb %q already claimed by %s; reassigned to %s", k, owner, t.ID),
				})
				l.logger.Warn("anchor verb collision", zap.String("verb", k), zap.String("previous", owner), zap.String("next", t.ID))
			}
			dstA[k] = t.ID
		}
	}
	l.logger.Debug("templates loaded", zap.Int("templates", len(dstT)), zap.Int("anchors", len(dstA)), zap.Int("warnings", len(warnings)))
	return warnings
}

// Template returns the template registered under id.
func (l *Library) Template(id string) (*motion.Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.templates[id]
	return t, ok
}

// TemplateIDs lists every template id, sorted.
func (l *Library) TemplateIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.templates))
	for id := range l.templates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AnchorVerbs returns a copy of the verb → template id index.
func (l *Library) AnchorVerbs() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.anchors))
	for k, v := range l.anchors {
		out[k] = v
	}
	return out
}

// Size is the number of loaded templates.
func (l *Library) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.templates)
}

// Clear drops every template and anchor.
func (l *Library) Clear() {
	l.mu.Lock()
	l.templates = map[string]*motion.Template{}
	l.anchors = map[string]string{}
	l.mu.Unlock()
}
