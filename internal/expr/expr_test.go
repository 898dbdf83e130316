package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Precedence(t *testing.T) {
	cases := []struct {
		expr string
		vars map[string]float64
		want float64
	}{
		{"2 + 3 * 4", nil, 14},
		{"(2+3)*4", nil, 20},
		{"-speed", map[string]float64{"speed": 2}, -2},
		{"10 - 4 - 3", nil, 3},
		{"12 / 3 / 2", nil, 2},
		{"--1", nil, 1},
		{"index * 0.5 + .25", map[string]float64{"index": 3}, 1.75},
		{"{{ speed * 2 }}", map[string]float64{"speed": 1.5}, 3},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.expr, tc.vars)
		require.NoError(t, err, tc.expr)
		assert.InDelta(t, tc.want, got, 1e-9, tc.expr)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := Evaluate("unknown", map[string]float64{})
	assert.ErrorIs(t, err, ErrUnknownVariable)

	_, err = Evaluate("1/0", nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Evaluate("1 / (speed - speed)", map[string]float64{"speed": 3})
	assert.ErrorIs(t, err, ErrDivisionByZero)

	for _, bad := range []string{"", "1 +", "(1", "1 )", "2 $ 3", "1..2"} {
		_, err = Evaluate(bad, nil)
		assert.ErrorIs(t, err, ErrSyntax, bad)
	}
}

func TestIsExpression(t *testing.T) {
	assert.True(t, IsExpression("{{speed}}"))
	assert.True(t, IsExpression("  {{ 1 + 2 }} "))
	assert.False(t, IsExpression("1.5"))
	assert.False(t, IsExpression(1.5))
	assert.False(t, IsExpression("{{"))
	assert.False(t, IsExpression(nil))
}

func TestResolveParamValue(t *testing.T) {
	vars := map[string]float64{"speed": 2}

	v, err := ResolveParamValue(0.25, vars)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	v, err = ResolveParamValue(3, vars)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = ResolveParamValue(" 1.5 ", vars)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = ResolveParamValue("{{ speed * 30 }}", vars)
	require.NoError(t, err)
	assert.Equal(t, 60.0, v)

	_, err = ResolveParamValue("fast", vars)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = ResolveParamValue(true, vars)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestResolveParamValue_RejectsNonFinite(t *testing.T) {
	for _, bad := range []any{"NaN", "inf", "-Infinity", " +Inf ", math.NaN(), math.Inf(1)} {
		_, err := ResolveParamValue(bad, nil)
		assert.ErrorIs(t, err, ErrInvalidParam, "%v", bad)
	}

	_, err := ResolveParamValue("{{ big * big }}", map[string]float64{"big": 1e200})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = Evaluate("big * -big", map[string]float64{"big": 1e200})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestCheck(t *testing.T) {
	known := map[string]bool{"speed": true}
	assert.NoError(t, Check("{{ speed * 2 }}", known))
	assert.NoError(t, Check(4, known))
	assert.ErrorIs(t, Check("{{ phase }}", known), ErrUnknownVariable)
	assert.ErrorIs(t, Check("{{ 1 + }}", known), ErrSyntax)
	assert.NoError(t, Check("{{ phase }}", nil))

	for _, bad := range []any{"NaN", "inf", "Infinity", math.Inf(-1)} {
		assert.ErrorIs(t, Check(bad, known), ErrInvalidParam, "%v", bad)
	}
}
