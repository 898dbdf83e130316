// Package adverb turns a manner adverb into speed and amplitude overrides for
// a template.
package adverb

import (
	"sort"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/normalize"
)

// Tables are the generic multiplier tables consulted when a template has no
// entry of its own for an adverb.
type Tables struct {
	Speed     map[string]float64
	Amplitude map[string]float64
}

// DefaultTables returns the built-in vocabulary.
func DefaultTables() Tables {
	return Tables{
		Speed: map[string]float64{
			"quickly":     1.8,
			"fast":        1.8,
			"rapidly":     2.0,
			"swiftly":     1.7,
			"briskly":     1.4,
			"hurriedly":   1.6,
			"frantically": 2.2,
			"wildly":      1.5,
			"eagerly":     1.3,
			"slowly":      0.5,
			"leisurely":   0.6,
			"lazily":      0.5,
			"gently":      0.7,
			"calmly":      0.7,
			"sluggishly":  0.4,
			"gracefully":  0.8,
			"carefully":   0.6,
			"sleepily":    0.4,
		},
		Amplitude: map[string]float64{
			"wildly":        1.6,
			"energetically": 1.4,
			"vigorously":    1.5,
			"violently":     1.8,
			"dramatically":  1.7,
			"excitedly":     1.3,
			"happily":       1.2,
			"proudly":       1.1,
			"frantically":   1.5,
			"gently":        0.6,
			"softly":        0.5,
			"slightly":      0.4,
			"subtly":        0.4,
			"barely":        0.2,
			"sadly":         0.7,
			"gracefully":    0.9,
			"lazily":        0.7,
			"calmly":        0.8,
			"sleepily":      0.6,
		},
	}
}

// strategy is one fallible lookup. key is already normalised.
type strategy func(key string, t *motion.Template) (motion.Overrides, bool)

// Resolver applies its strategies in order and stops at the first hit:
// the template's own adverb_map, then the generic tables.
type Resolver struct {
	tables     Tables
	strategies []strategy
}

// NewResolver builds a resolver over tables.
func NewResolver(tables Tables) *Resolver {
	r := &Resolver{tables: tables}
	r.strategies = []strategy{templateMap, r.generic}
	return r
}

// Resolve returns the overrides adverb implies for t. Blank adverbs and
// adverbs known to no strategy yield empty overrides.
func (r *Resolver) Resolve(adverb string, t *motion.Template) motion.Overrides {
	key := normalize.Key(adverb)
	if key == "" {
		return motion.Overrides{}
	}
	for _, s := range r.strategies {
		if o, ok := s(key, t); ok {
			return o
		}
	}
	return motion.Overrides{}
}

// IsKnownAdverb reports membership in either generic table.
func (r *Resolver) IsKnownAdverb(adverb string) bool {
	key := normalize.Key(adverb)
	_, s := r.tables.Speed[key]
	_, a := r.tables.Amplitude[key]
	return s || a
}

func templateMap(key string, t *motion.Template) (motion.Overrides, bool) {
	if t == nil || len(t.Defaults.AdverbMap) == 0 {
		return motion.Overrides{}, false
	}
	v, ok := lookupFolded(t.Defaults.AdverbMap, key)
	if !ok {
		return motion.Overrides{}, false
	}
	o := motion.Overrides{}
	if v.Speed != nil {
		o.Speed = motion.Float(*v.Speed)
	}
	if v.AmplitudeScale != nil {
		o.AmplitudeScale = motion.Float(*v.AmplitudeScale)
	}
	return o, true
}

// lookupFolded finds key in m comparing folded keys. An exact key wins;
// otherwise keys are tried in sorted order so the result is stable when
// several spellings fold to the same word.
func lookupFolded(m map[string]motion.AdverbOverride, key string) (motion.AdverbOverride, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if normalize.Key(k) == key {
			return m[k], true
		}
	}
	return motion.AdverbOverride{}, false
}

func (r *Resolver) generic(key string, _ *motion.Template) (motion.Overrides, bool) {
	o := motion.Overrides{}
	if v, ok := r.tables.Speed[key]; ok {
		o.Speed = motion.Float(v)
	}
	if v, ok := r.tables.Amplitude[key]; ok {
		o.AmplitudeScale = motion.Float(v)
	}
	return o, !o.Empty()
}
