// Package skeleton maps subject nouns to archetypal part hierarchies.
package skeleton

import (
	"sort"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/normalize"
)

// Default is the archetype used for unknown nouns.
const Default = "default"

// Part is a named part and the name of its parent ("" for the root).
type Part struct {
	Name   string
	Parent string
}

// Archetype is a reusable skeleton shape.
type Archetype struct {
	Name  string
	Parts []Part
	Nouns []string
}

// PartNames returns the part names in declaration order.
func (a Archetype) PartNames() []string {
	out := make([]string, len(a.Parts))
	for i, p := range a.Parts {
		out[i] = p.Name
	}
	return out
}

// PartInfos returns the parts as a dense skeleton with ids in declaration
// order. The first part is the root.
func (a Archetype) PartInfos() []motion.PartInfo {
	ids := make(map[string]int, len(a.Parts))
	for i, p := range a.Parts {
		ids[p.Name] = i
	}
	out := make([]motion.PartInfo, len(a.Parts))
	for i, p := range a.Parts {
		out[i] = motion.PartInfo{ID: i, Name: p.Name}
		if id, ok := ids[p.Parent]; ok && p.Parent != "" {
			parent := id
			out[i].ParentID = &parent
		}
	}
	return out
}

// Registry resolves nouns to archetypes.
type Registry struct {
	byName map[string]Archetype
	byNoun map[string]string
}

// NewRegistry indexes archetypes. A later archetype claiming the same noun
// wins. A "default" archetype with a single body part is added when absent.
func NewRegistry(archetypes []Archetype) *Registry {
	r := &Registry{byName: map[string]Archetype{}, byNoun: map[string]string{}}
	for _, a := range archetypes {
		r.byName[a.Name] = a
		for _, n := range a.Nouns {
			r.byNoun[normalize.Key(n)] = a.Name
		}
	}
	if _, ok := r.byName[Default]; !ok {
		r.byName[Default] = Archetype{Name: Default, Parts: []Part{{Name: "body"}}}
	}
	return r
}

// ForNoun returns the archetype for noun, falling back to Default.
func (r *Registry) ForNoun(noun string) Archetype {
	if name, ok := r.byNoun[normalize.Key(noun)]; ok {
		return r.byName[name]
	}
	return r.byName[Default]
}

// Archetype returns the archetype called name.
func (r *Registry) Archetype(name string) (Archetype, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the archetype names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry(DefaultArchetypes())

// ForNoun resolves noun against the built-in archetypes.
func ForNoun(noun string) Archetype {
	return defaultRegistry.ForNoun(noun)
}
