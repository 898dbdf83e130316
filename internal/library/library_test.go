package library

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/parser"
)

func tpl(id string, verbs ...string) motion.Template {
	return motion.Template{
		ID:          id,
		AnchorVerbs: verbs,
		WholeBody:   motion.Primitive{Primitive: "bounce"},
		Defaults:    motion.Defaults{Speed: 1},
	}
}

func TestLoadTemplates_IndexesAnchors(t *testing.T) {
	l := New(nil, nil)
	warnings := l.LoadTemplates([]motion.Template{
		tpl("locomotion_quadruped", "run", "Gallop", "trot"),
		tpl("wave", "wave"),
	})
	assert.Empty(t, warnings)
	assert.Equal(t, 2, l.Size())
	assert.Equal(t, []string{"locomotion_quadruped", "wave"}, l.TemplateIDs())
	assert.Equal(t, map[string]string{
		"run":    "locomotion_quadruped",
		"gallop": "locomotion_quadruped",
		"trot":   "locomotion_quadruped",
		"wave":   "wave",
	}, l.AnchorVerbs())

	got, ok := l.Template("wave")
	require.True(t, ok)
	assert.Equal(t, "wave", got.ID)
}

func TestLoadTemplates_CollisionLastWriteWins(t *testing.T) {
	l := New(nil, nil)
	warnings := l.LoadTemplates([]motion.Template{
		tpl("locomotion_quadruped", "run"),
		tpl("locomotion_biped", "run", "walk"),
	})
	require.Len(t, warnings, 1)
	assert.Equal(t, parser.SeverityWarning, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, `"run"`)
	assert.Equal(t, "locomotion_biped", l.AnchorVerbs()["run"])
}

func TestLoadTemplates_ReplaceByID(t *testing.T) {
	l := New(nil, nil)
	l.LoadTemplates([]motion.Template{tpl("a", "run", "hop")})
	warnings := l.LoadTemplates([]motion.Template{tpl("a", "run")})
	assert.Empty(t, warnings)
	assert.Equal(t, 1, l.Size())
	assert.Equal(t, map[string]string{"run": "a"}, l.AnchorVerbs())
}

func TestLoadTemplates_ExcludesInvalid(t *testing.T) {
	l := New(nil, nil)
	bad := tpl("bad", "explode")
	bad.WholeBody.Primitive = "teleport"
	warnings := l.LoadTemplates([]motion.Template{bad, tpl("good", "hop")})

	require.NotEmpty(t, warnings)
	assert.Equal(t, "bad", warnings[0].TemplateID)
	assert.Equal(t, parser.SeverityError, warnings[0].Severity)
	assert.True(t, strings.Contains(warnings[0].String(), "teleport"))

	_, ok := l.Template("bad")
	assert.False(t, ok)
	_, claimed := l.AnchorVerbs()["explode"]
	assert.False(t, claimed)
	assert.Equal(t, 1, l.Size())
}

func TestClearAndReload(t *testing.T) {
	l := New(nil, nil)
	l.LoadTemplates([]motion.Template{tpl("a", "run")})
	l.Clear()
	assert.Zero(t, l.Size())
	assert.Empty(t, l.AnchorVerbs())

	l.LoadTemplates([]motion.Template{tpl("a", "run")})
	l.Reload([]motion.Template{tpl("b", "hop")})
	assert.Equal(t, []string{"b"}, l.TemplateIDs())
	assert.Equal(t, map[string]string{"hop": "b"}, l.AnchorVerbs())
}

func TestConcurrentReadsDuringReload(t *testing.T) {
	l := New(nil, nil)
	l.LoadTemplates([]motion.Template{tpl("a", "run")})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				ids := l.TemplateIDs()
				assert.Len(t, ids, 1)
				_ = l.AnchorVerbs()
			}
		}()
	}
	for j := 0; j < 50; j++ {
		if j%2 == 0 {
			l.Reload([]motion.Template{tpl("b", "hop")})
		} else {
			l.Reload([]motion.Template{tpl("a", "run")})
		}
	}
	wg.Wait()
}
