// Package primitive is the catalogue of motion primitives the renderer
// understands: their numeric ids, which ones loop, and the default length
// of each one-shot.
package primitive

import (
	"sort"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// Spec describes one primitive.
type Spec struct {
	Name    string
	ID      int
	Looping bool
	// DefaultDuration is the play-once length in seconds; zero for looping
	// primitives.
	DefaultDuration float64
}

// Catalog resolves primitive names.
type Catalog struct {
	byName map[string]Spec
}

// NewCatalog indexes specs by folded name. Later specs replace earlier ones
// with the same name.
func NewCatalog(specs []Spec) *Catalog {
	c := &Catalog{byName: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		c.byName[normalize.Key(s.Name)] = s
	}
	return c
}

// Lookup returns the spec registered under name.
func (c *Catalog) Lookup(name string) (Spec, bool) {
	s, ok := c.byName[normalize.Key(name)]
	return s, ok
}

// Names lists every registered primitive, sorted by id.
func (c *Catalog) Names() []string {
	specs := make([]Spec, 0, len(c.byName))
	for _, s := range c.byName {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}

// DefaultSpecs is the built-in primitive set.
func DefaultSpecs() []Spec {
	return []Spec{
		// looping
		{Name: "idle", ID: 0, Looping: true},
		{Name: "oscillate", ID: 1, Looping: true},
		{Name: "rotate", ID: 2, Looping: true},
		{Name: "bounce", ID: 3, Looping: true},
		{Name: "sway", ID: 4, Looping: true},
		{Name: "wiggle", ID: 5, Looping: true},
		{Name: "flap", ID: 6, Looping: true},
		{Name: "gait_cycle", ID: 7, Looping: true},
		{Name: "pulse", ID: 8, Looping: true},
		{Name: "spin", ID: 9, Looping: true},
		{Name: "hover", ID: 10, Looping: true},
		{Name: "undulate", ID: 11, Looping: true},
		// one-shot
		{Name: "jump", ID: 20, DefaultDuration: 0.8},
		{Name: "nod", ID: 21, DefaultDuration: 0.6},
		{Name: "shake", ID: 22, DefaultDuration: 0.7},
		{Name: "stretch", ID: 23, DefaultDuration: 1.0},
		{Name: "squash", ID: 24, DefaultDuration: 0.4},
		{Name: "lunge", ID: 25, DefaultDuration: 0.6},
		{Name: "bow", ID: 26, DefaultDuration: 1.2},
		{Name: "tilt", ID: 27, DefaultDuration: 0.5},
		{Name: "recoil", ID: 28, DefaultDuration: 0.4},
		{Name: "fall", ID: 29, DefaultDuration: 1.0},
		{Name: "flip", ID: 30, DefaultDuration: 0.9},
		{Name: "kick", ID: 31, DefaultDuration: 0.5},
	}
}

// Default returns a catalog over DefaultSpecs.
func Default() *Catalog { return NewCatalog(DefaultSpecs()) }
