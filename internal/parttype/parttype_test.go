package parttype

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	cases := map[string]Type{
		"tail_fin":        Tail,
		"Head":            Head,
		"neck":            Head,
		"front_left_leg":  Limb,
		"pectoral_fins":   Limb,
		"left_wing":       Limb,
		"wheels":          Rotation,
		"rotor_arm":       Rotation,
		"torso":           Trunk,
		"fuselage":        Trunk,
		"windshield":      Surface,
		"antenna_l":       Appendage,
		"body":            Body,
		"foundation":      Body,
	}
	for name, want := range cases {
		got, ok := InferType(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestInferType_NoMatch(t *testing.T) {
	_, ok := InferType("xyz")
	assert.False(t, ok)
	_, ok = InferType("")
	assert.False(t, ok)
}

func TestRules_OrderDecides(t *testing.T) {
	limbFirst := Rules{
		{Limb, regexp.MustCompile(`fin`)},
		{Tail, regexp.MustCompile(`tail`)},
	}
	got, ok := limbFirst.Infer("tail_fin")
	assert.True(t, ok)
	assert.Equal(t, Limb, got)
}
