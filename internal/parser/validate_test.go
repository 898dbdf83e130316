package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamusis/verbmotion/internal/motion"
)

func messages(issues []Issue, sev Severity) []string {
	var out []string
	for _, i := range issues {
		if i.Severity == sev {
			out = append(out, i.Message)
		}
	}
	return out
}

func TestValidate_CleanTemplate(t *testing.T) {
	p := New(nil, nil, nil)
	assert.Empty(t, p.Validate(gallopTemplate()))
}

func TestValidate_CollectsEverything(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:        "broken",
		WholeBody: motion.Primitive{Primitive: "teleport", Params: motion.Params{"x": "{{ 1 + }}"}},
		PartRules: []motion.PartRule{
			{Pattern: "", Primitive: "wiggle"},
			{Pattern: "leg", Primitive: "gait_cycle", Params: motion.Params{"phase": "{{ index * phase }}", "bad": "fast"}},
		},
	}
	issues := p.Validate(tpl)
	assert.True(t, HasErrors(issues))

	errs := strings.Join(messages(issues, SeverityError), "\n")
	assert.Contains(t, errs, "teleport")
	assert.Contains(t, errs, "syntax")
	assert.Contains(t, errs, "empty glob pattern")
	assert.Contains(t, errs, "unknown variable: phase")
	assert.Contains(t, errs, "invalid param value")

	warns := strings.Join(messages(issues, SeverityWarning), "\n")
	assert.Contains(t, warns, "no anchor verbs")
	assert.Contains(t, warns, "defaults.speed")
}

func TestValidate_NoMotionWarning(t *testing.T) {
	p := New(nil, nil, nil)
	issues := p.Validate(&motion.Template{ID: "still", AnchorVerbs: []string{"rest"}, Defaults: motion.Defaults{Speed: 1}})
	assert.False(t, HasErrors(issues))
	assert.Len(t, messages(issues, SeverityWarning), 1)
}

func TestValidate_RejectsNonFiniteParams(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:          "hover",
		AnchorVerbs: []string{"hover"},
		WholeBody:   motion.Primitive{Primitive: "bounce", Params: motion.Params{"h": "NaN", "k": "inf"}},
		Defaults:    motion.Defaults{Speed: 1},
	}
	issues := p.Validate(tpl)
	assert.True(t, HasErrors(issues))

	errs := messages(issues, SeverityError)
	assert.Len(t, errs, 2)
	for _, m := range errs {
		assert.Contains(t, m, "invalid param value")
	}
}
