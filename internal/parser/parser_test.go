package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/verbmotion/internal/expr"
	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/primitive"
)

func intp(v int) *int { return &v }

func quadrupedParts() []motion.PartInfo {
	return []motion.PartInfo{
		{ID: 0, Name: "body"},
		{ID: 1, Name: "head", ParentID: intp(0)},
		{ID: 2, Name: "front_left_leg", ParentID: intp(0)},
		{ID: 3, Name: "front_right_leg", ParentID: intp(0)},
		{ID: 4, Name: "back_left_leg", ParentID: intp(0)},
		{ID: 5, Name: "back_right_leg", ParentID: intp(0)},
		{ID: 6, Name: "tail", ParentID: intp(0)},
	}
}

func gallopTemplate() *motion.Template {
	return &motion.Template{
		ID:          "locomotion_quadruped",
		AnchorVerbs: []string{"run", "gallop", "trot"},
		WholeBody: motion.Primitive{
			Primitive: "bounce",
			Params:    motion.Params{"height": "{{ 0.1 * speed }}"},
		},
		PartRules: []motion.PartRule{
			{Pattern: "*_leg", Primitive: "gait_cycle", Params: motion.Params{"phase": "{{ index * 0.5 }}", "rate": "{{ speed * 2 }}"}},
			{Pattern: "wing* OR *_wing", Primitive: "flap"},
			{Pattern: "tail", Primitive: "wiggle", Params: motion.Params{"amplitude": "{{ amplitude * 0.3 }}"}},
		},
		Defaults: motion.Defaults{
			Speed: 1,
			AdverbMap: map[string]motion.AdverbOverride{
				"quickly": {Speed: motion.Float(2)},
				"slowly":  {Speed: motion.Float(0.3), AmplitudeScale: motion.Float(0.7)},
			},
		},
	}
}

func TestParse_LoopingWholeBodyAndStaggeredLegs(t *testing.T) {
	p := New(nil, nil, nil)
	plan, err := p.Parse(gallopTemplate(), quadrupedParts(), Options{})
	require.NoError(t, err)

	assert.True(t, plan.WholeBody.Active)
	assert.Zero(t, plan.WholeBody.Duration)
	assert.InDelta(t, 0.1, plan.WholeBody.Params["height"], 1e-9)
	assert.Equal(t, 1.0, plan.SpeedScale)

	require.Len(t, plan.Parts, 7)
	assert.Nil(t, plan.Parts[0])
	assert.Nil(t, plan.Parts[1])

	gait, _ := primitive.Default().Lookup("gait_cycle")
	want := []*motion.PlanEntry{
		{PrimitiveID: gait.ID, Params: map[string]float64{"phase": 0, "rate": 2}},
		{PrimitiveID: gait.ID, Params: map[string]float64{"phase": 0.5, "rate": 2}},
		{PrimitiveID: gait.ID, Params: map[string]float64{"phase": 1, "rate": 2}},
		{PrimitiveID: gait.ID, Params: map[string]float64{"phase": 1.5, "rate": 2}},
	}
	if diff := cmp.Diff(want, plan.Parts[2:6]); diff != "" {
		t.Fatalf("leg entries mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, plan.Parts[6])
	assert.InDelta(t, 0.3, plan.Parts[6].Params["amplitude"], 1e-9)
}

func TestParse_AdverbOverrides(t *testing.T) {
	p := New(nil, nil, nil)

	plan, err := p.Parse(gallopTemplate(), quadrupedParts(), Options{Adverb: "quickly"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, plan.SpeedScale)
	assert.InDelta(t, 0.2, plan.WholeBody.Params["height"], 1e-9)
	assert.Equal(t, 4.0, plan.Parts[2].Params["rate"])

	plan, err = p.Parse(gallopTemplate(), quadrupedParts(), Options{Adverb: "slowly"})
	require.NoError(t, err)
	assert.Equal(t, 0.3, plan.SpeedScale)
	assert.InDelta(t, 0.21, plan.Parts[6].Params["amplitude"], 1e-9)

	plan, err = p.Parse(gallopTemplate(), quadrupedParts(), Options{Adverb: "xyzzily"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, plan.SpeedScale)

	explicit := motion.Overrides{Speed: motion.Float(5)}
	plan, err = p.Parse(gallopTemplate(), quadrupedParts(), Options{Adverb: "slowly", Overrides: &explicit})
	require.NoError(t, err)
	assert.Equal(t, 5.0, plan.SpeedScale)
}

func TestParse_OneShotDurations(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:        "hop",
		WholeBody: motion.Primitive{Primitive: "jump"},
		PartRules: []motion.PartRule{
			{Pattern: "head", Primitive: "nod", Params: motion.Params{"duration": "{{ 1.2 / speed }}"}},
		},
		Defaults: motion.Defaults{Speed: 2},
	}
	plan, err := p.Parse(tpl, quadrupedParts(), Options{})
	require.NoError(t, err)

	jump, _ := primitive.Default().Lookup("jump")
	assert.Equal(t, jump.DefaultDuration, plan.WholeBody.Duration)
	assert.Greater(t, plan.WholeBody.Duration, 0.0)

	require.NotNil(t, plan.Parts[1])
	assert.InDelta(t, 0.6, plan.Parts[1].Duration, 1e-9)
	_, hasDuration := plan.Parts[1].Params["duration"]
	assert.False(t, hasDuration)
}

func TestParse_InferredTypeFallback(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:        "swim",
		WholeBody: motion.Primitive{Primitive: "undulate"},
		PartRules: []motion.PartRule{
			{Pattern: "tail", Primitive: "wiggle"},
			{Pattern: "limb", Primitive: "flap"},
		},
		Defaults: motion.Defaults{Speed: 1},
	}
	parts := []motion.PartInfo{
		{ID: 0, Name: "body"},
		{ID: 1, Name: "tail_fin", ParentID: intp(0)},
		{ID: 2, Name: "pectoral_fins", ParentID: intp(0)},
	}
	plan, err := p.Parse(tpl, parts, Options{})
	require.NoError(t, err)

	wiggle, _ := primitive.Default().Lookup("wiggle")
	flap, _ := primitive.Default().Lookup("flap")
	require.NotNil(t, plan.Parts[1])
	assert.Equal(t, wiggle.ID, plan.Parts[1].PrimitiveID)
	require.NotNil(t, plan.Parts[2])
	assert.Equal(t, flap.ID, plan.Parts[2].PrimitiveID)
	assert.Nil(t, plan.Parts[0])
}

func TestParse_NoMatchRulesStayNil(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:        "fly",
		WholeBody: motion.Primitive{Primitive: "hover"},
		PartRules: []motion.PartRule{{Pattern: "propeller_xyz", Primitive: "spin"}},
		Defaults:  motion.Defaults{Speed: 1},
	}
	plan, err := p.Parse(tpl, []motion.PartInfo{{ID: 0, Name: "seat"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []*motion.PlanEntry{nil}, plan.Parts)
}

func TestParse_LaterRuleWins(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID: "both",
		PartRules: []motion.PartRule{
			{Pattern: "*", Primitive: "sway"},
			{Pattern: "head", Primitive: "nod"},
		},
		Defaults: motion.Defaults{Speed: 1},
	}
	plan, err := p.Parse(tpl, quadrupedParts(), Options{})
	require.NoError(t, err)
	assert.False(t, plan.WholeBody.Active)

	nod, _ := primitive.Default().Lookup("nod")
	sway, _ := primitive.Default().Lookup("sway")
	assert.Equal(t, nod.ID, plan.Parts[1].PrimitiveID)
	assert.Equal(t, sway.ID, plan.Parts[0].PrimitiveID)
}

func TestParse_FatalErrors(t *testing.T) {
	p := New(nil, nil, nil)

	tpl := gallopTemplate()
	tpl.WholeBody.Primitive = "teleport"
	_, err := p.Parse(tpl, quadrupedParts(), Options{})
	assert.ErrorIs(t, err, ErrUnknownPrimitive)

	tpl = gallopTemplate()
	tpl.PartRules[0].Params["phase"] = "{{ phase_offset }}"
	_, err = p.Parse(tpl, quadrupedParts(), Options{})
	assert.ErrorIs(t, err, expr.ErrUnknownVariable)

	tpl = gallopTemplate()
	tpl.WholeBody.Params["height"] = "{{ 1 / (speed - 1) }}"
	_, err = p.Parse(tpl, quadrupedParts(), Options{})
	assert.ErrorIs(t, err, expr.ErrDivisionByZero)

	tpl = gallopTemplate()
	tpl.WholeBody.Params["height"] = "NaN"
	_, err = p.Parse(tpl, quadrupedParts(), Options{})
	assert.ErrorIs(t, err, expr.ErrInvalidParam)

	_, err = p.Parse(gallopTemplate(), []motion.PartInfo{{ID: 3, Name: "body"}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidSkeleton)

	_, err = p.Parse(gallopTemplate(), []motion.PartInfo{{ID: 0, Name: "a"}, {ID: 0, Name: "b"}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidSkeleton)
}

func TestParse_TemplateVars(t *testing.T) {
	p := New(nil, nil, nil)
	tpl := &motion.Template{
		ID:        "sway",
		WholeBody: motion.Primitive{Primitive: "sway", Params: motion.Params{"angle": "{{ base_angle * amplitude }}"}},
		Defaults:  motion.Defaults{Speed: 1, AmplitudeScale: motion.Float(2), Vars: map[string]float64{"base_angle": 15}},
	}
	plan, err := p.Parse(tpl, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 30.0, plan.WholeBody.Params["angle"])
	assert.Empty(t, plan.Parts)
}
