package verbhash

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Normalization(t *testing.T) {
	tbl := New(map[string]string{"run": "locomotion_quadruped", "Gallop": "locomotion_quadruped"})

	a, okA := tbl.Lookup(" Run ")
	b, okB := tbl.Lookup("run")
	c, okC := tbl.Lookup("RUN")
	require.True(t, okA && okB && okC)
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)

	assert.True(t, tbl.Has("gallop"))
	_, ok := tbl.Lookup("")
	assert.False(t, ok)
	_, ok = tbl.Lookup("   ")
	assert.False(t, ok)
	assert.Equal(t, 2, tbl.Size())
}

func TestVerbsForTemplate(t *testing.T) {
	tbl := New(map[string]string{"run": "a", "runs": "a", "wave": "b"})
	assert.Equal(t, []string{"run", "runs"}, tbl.VerbsForTemplate("a"))
	assert.Empty(t, tbl.VerbsForTemplate("missing"))
}

func TestTemplateIDs(t *testing.T) {
	tbl := New(map[string]string{"run": "loco", "ran": "loco", "nod": "gesture"})
	assert.Equal(t, []string{"gesture", "loco"}, tbl.TemplateIDs())

	var empty *Table
	assert.Nil(t, empty.TemplateIDs())
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Lookup("run")
	assert.False(t, ok)
	assert.Zero(t, tbl.Size())
}

func TestConjugate(t *testing.T) {
	irr := DefaultIrregular()
	cases := map[string][]string{
		"trot":    {"trot", "trots", "trotting", "trotted"},
		"gallop":  {"gallop", "gallops", "galloping", "galloped"},
		"wave":    {"wave", "waves", "waving", "waved"},
		"cry":     {"cry", "cries", "crying", "cried"},
		"play":    {"play", "plays", "playing", "played"},
		"splash":  {"splash", "splashes", "splashing", "splashed"},
		"flee":    {"flee", "flees", "fleeing", "fled"},
		"run":     {"run", "runs", "running", "ran"},
		"fly":     {"fly", "flies", "flying", "flew", "flown"},
		"jump up": {"jump up", "jumps up", "jumping up", "jumped up"},
	}
	for verb, want := range cases {
		assert.Equal(t, want, Conjugate(verb, irr), verb)
	}
	assert.Empty(t, Conjugate("  ", irr))
}

func TestGenerate_CollisionLastWriteWins(t *testing.T) {
	artifact, collisions := Generate([]Anchor{
		{Verb: "run", TemplateID: "locomotion_quadruped"},
		{Verb: "trot", TemplateID: "locomotion_quadruped"},
		{Verb: "run", TemplateID: "locomotion_biped"},
	}, DefaultIrregular())

	assert.Equal(t, "locomotion_biped", artifact["running"])
	assert.Equal(t, "locomotion_quadruped", artifact["trotting"])
	require.NotEmpty(t, collisions)
	assert.Equal(t, "run", collisions[0].Form)
	assert.Equal(t, "locomotion_quadruped", collisions[0].Previous)
	assert.Equal(t, "locomotion_biped", collisions[0].Next)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash", "verb_hash.json")
	require.NoError(t, WriteFile(path, map[string]string{"run": "a", "ran": "a"}, time.Second))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	id, ok := tbl.Lookup("RAN")
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestAnchorsFromMap(t *testing.T) {
	got := AnchorsFromMap(map[string]string{"trot": "a", "run": "a", "hop": "b"})
	assert.Equal(t, []Anchor{
		{Verb: "hop", TemplateID: "b"},
		{Verb: "run", TemplateID: "a"},
		{Verb: "trot", TemplateID: "a"},
	}, got)
}
