// Package expr evaluates the small arithmetic language used to parameterise
// motion primitives. Param values are literal numbers, numeric strings, or
// strings wrapped in {{ }} holding an expression over + - * /, parentheses,
// unary minus, numeric literals and identifiers bound from a variable scope.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// IsExpression reports whether value is a string wrapped in {{ }}.
// Non-string values and bare numeric strings are never expressions.
func IsExpression(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	_, ok = unwrap(s)
	return ok
}

func unwrap(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(openDelim)+len(closeDelim) {
		return "", false
	}
	if !strings.HasPrefix(s, openDelim) || !strings.HasSuffix(s, closeDelim) {
		return "", false
	}
	return s[len(openDelim) : len(s)-len(closeDelim)], true
}

// Evaluate parses and evaluates expr against vars. expr may be given with or
// without the {{ }} wrapper.
func Evaluate(expr string, vars map[string]float64) (float64, error) {
	if inner, ok := unwrap(expr); ok {
		expr = inner
	}
	n, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	v, err := n.Eval(vars)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, fmt.Errorf("%w: %q evaluates to %v", ErrInvalidParam, expr, v)
	}
	return v, nil
}

// ResolveParamValue turns a template param value into a number.
func ResolveParamValue(value any, vars map[string]float64) (float64, error) {
	if n, ok := numeric(value); ok {
		if !finite(n) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidParam, n)
		}
		return n, nil
	}
	s, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrInvalidParam, value)
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if !finite(n) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidParam, s)
		}
		return n, nil
	}
	inner, ok := unwrap(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParam, s)
	}
	return Evaluate(inner, vars)
}

// Check verifies that value would resolve given a scope holding the named
// variables, without evaluating it. Unknown identifiers are reported with
// ErrUnknownVariable; division by zero is not detected.
func Check(value any, known map[string]bool) error {
	if n, ok := numeric(value); ok {
		if !finite(n) {
			return fmt.Errorf("%w: %v", ErrInvalidParam, n)
		}
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %T", ErrInvalidParam, value)
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if !finite(n) {
			return fmt.Errorf("%w: %q", ErrInvalidParam, s)
		}
		return nil
	}
	inner, ok := unwrap(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidParam, s)
	}
	n, err := Parse(inner)
	if err != nil {
		return err
	}
	if known == nil {
		return nil
	}
	for _, v := range n.Vars(nil) {
		if !known[v] {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, v)
		}
	}
	return nil
}

// finite rejects NaN and ±Inf, which cannot be encoded into a plan.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
