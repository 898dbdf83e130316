// Package parser evaluates a template's motion rules against one skeleton and
// emits the resulting motion plan.
package parser

import (
	"fmt"
	"sort"

	"github.com/kamusis/verbmotion/internal/adverb"
	"github.com/kamusis/verbmotion/internal/expr"
	"github.com/kamusis/verbmotion/internal/glob"
	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/parttype"
	"github.com/kamusis/verbmotion/internal/primitive"
)

// Scope variable names available to every param expression. Part rule
// params additionally see VarIndex and VarCount.
const (
	VarSpeed     = "speed"
	VarAmplitude = "amplitude"
	VarIndex     = "index"
	VarCount     = "count"

	durationParam = "duration"
)

// Parser turns templates into motion plans.
type Parser struct {
	catalog *primitive.Catalog
	adverbs *adverb.Resolver
	types   parttype.Rules
}

// New builds a parser. Nil arguments fall back to the built-in catalog,
// adverb tables and part-type rules.
func New(catalog *primitive.Catalog, adverbs *adverb.Resolver, types parttype.Rules) *Parser {
	if catalog == nil {
		catalog = primitive.Default()
	}
	if adverbs == nil {
		adverbs = adverb.NewResolver(adverb.DefaultTables())
	}
	if types == nil {
		types = parttype.DefaultRules()
	}
	return &Parser{catalog: catalog, adverbs: adverbs, types: types}
}

// Options adjust a single Parse call. Overrides, when set, are used as-is
// and Adverb is ignored.
type Options struct {
	Adverb    string
	Overrides *motion.Overrides
}

// Parse evaluates t against parts. Unknown primitives and expression errors
// are fatal; part rules that match no part are skipped.
func (p *Parser) Parse(t *motion.Template, parts []motion.PartInfo, opts Options) (*motion.Plan, error) {
	if err := checkSkeleton(parts); err != nil {
		return nil, err
	}

	ov := motion.Overrides{}
	switch {
	case opts.Overrides != nil:
		ov = *opts.Overrides
	case opts.Adverb != "":
		ov = p.adverbs.Resolve(opts.Adverb, t)
	}

	speed := t.DefaultSpeed()
	if ov.Speed != nil {
		speed = *ov.Speed
	}
	amplitude := t.DefaultAmplitude()
	if ov.AmplitudeScale != nil {
		amplitude = *ov.AmplitudeScale
	}

	base := make(map[string]float64, len(t.Defaults.Vars)+2)
	for k, v := range t.Defaults.Vars {
		base[k] = v
	}
	base[VarSpeed] = speed
	base[VarAmplitude] = amplitude

	plan := &motion.Plan{
		Parts:      make([]*motion.PlanEntry, len(parts)),
		SpeedScale: speed,
		WholeBody:  motion.WholeBodyPlan{Params: map[string]float64{}},
	}

	if t.WholeBody.Primitive != "" {
		id, dur, params, err := p.evalPrimitive(t.WholeBody.Primitive, t.WholeBody.Params, base)
		if err != nil {
			return nil, fmt.Errorf("template %s: whole_body: %w", t.ID, err)
		}
		plan.WholeBody = motion.WholeBodyPlan{Active: true, PrimitiveID: id, Duration: dur, Params: params}
	}

	names := make([]string, len(parts))
	for i, pi := range parts {
		names[i] = pi.Name
	}

	for ri, rule := range t.PartRules {
		matched := p.matchParts(names, rule.Pattern)
		if len(matched) == 0 {
			continue
		}
		for ordinal, idx := range matched {
			scope := make(map[string]float64, len(base)+2)
			for k, v := range base {
				scope[k] = v
			}
			scope[VarIndex] = float64(ordinal)
			scope[VarCount] = float64(len(matched))

			id, dur, params, err := p.evalPrimitive(rule.Primitive, rule.Params, scope)
			if err != nil {
				return nil, fmt.Errorf("template %s: part_rules[%d] on %s: %w", t.ID, ri, parts[idx].Name, err)
			}
			plan.Parts[parts[idx].ID] = &motion.PlanEntry{PrimitiveID: id, Duration: dur, Params: params}
		}
	}
	return plan, nil
}

// matchParts returns indexes into names matched by pattern, by name first and
// then by inferred part type.
func (p *Parser) matchParts(names []string, pattern string) []int {
	var out []int
	for i, n := range names {
		if glob.Match(n, pattern) {
			out = append(out, i)
		}
	}
	if len(out) > 0 {
		return out
	}
	for i, n := range names {
		typ, ok := p.types.Infer(n)
		if ok && glob.Match(string(typ), pattern) {
			out = append(out, i)
		}
	}
	return out
}

func (p *Parser) evalPrimitive(name string, raw motion.Params, scope map[string]float64) (int, float64, map[string]float64, error) {
	spec, ok := p.catalog.Lookup(name)
	if !ok {
		return 0, 0, nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(map[string]float64, len(raw))
	duration := 0.0
	for _, k := range keys {
		v, err := expr.ResolveParamValue(raw[k], scope)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("param %q: %w", k, err)
		}
		if k == durationParam {
			duration = v
			continue
		}
		params[k] = v
	}

	switch {
	case spec.Looping:
		duration = 0
	case duration <= 0:
		duration = spec.DefaultDuration
	}
	return spec.ID, duration, params, nil
}

func checkSkeleton(parts []motion.PartInfo) error {
	seen := make([]bool, len(parts))
	for _, pi := range parts {
		if pi.ID < 0 || pi.ID >= len(parts) {
			return fmt.Errorf("%w: part %q has id %d outside 0..%d", ErrInvalidSkeleton, pi.Name, pi.ID, len(parts)-1)
		}
		if seen[pi.ID] {
			return fmt.Errorf("%w: duplicate part id %d", ErrInvalidSkeleton, pi.ID)
		}
		seen[pi.ID] = true
	}
	return nil
}
