package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kamusis/verbmotion/internal/expr"
	"github.com/kamusis/verbmotion/internal/glob"
	"github.com/kamusis/verbmotion/internal/motion"
)

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a template.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs the checks Parse would fail on, collecting them instead of
// stopping at the first.
func (p *Parser) Validate(t *motion.Template) []Issue {
	var issues []Issue
	errf := func(format string, args ...any) {
		issues = append(issues, Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...any) {
		issues = append(issues, Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(t.ID) == "" {
		errf("template_id is empty")
	}
	if len(t.AnchorVerbs) == 0 {
		warnf("no anchor verbs; template is reachable only by id")
	}
	for i, v := range t.AnchorVerbs {
		if strings.TrimSpace(v) == "" {
			warnf("anchor_verbs[%d] is blank", i)
		}
	}
	if t.Defaults.Speed <= 0 {
		warnf("defaults.speed %v is not positive; using 1", t.Defaults.Speed)
	}
	advs := make([]string, 0, len(t.Defaults.AdverbMap))
	for adv := range t.Defaults.AdverbMap {
		advs = append(advs, adv)
	}
	sort.Strings(advs)
	for _, adv := range advs {
		if o := t.Defaults.AdverbMap[adv]; o.Speed != nil && *o.Speed <= 0 {
			warnf("adverb_map.%s speed %v is not positive", adv, *o.Speed)
		}
	}

	known := map[string]bool{VarSpeed: true, VarAmplitude: true}
	for k := range t.Defaults.Vars {
		known[k] = true
	}

	if t.WholeBody.Primitive == "" {
		if len(t.PartRules) == 0 {
			warnf("template assigns no motion: no whole_body primitive and no part rules")
		}
	} else {
		p.checkPrimitive("whole_body", t.WholeBody.Primitive, t.WholeBody.Params, known, errf)
	}

	partKnown := make(map[string]bool, len(known)+2)
	for k := range known {
		partKnown[k] = true
	}
	partKnown[VarIndex] = true
	partKnown[VarCount] = true

	for i, r := range t.PartRules {
		where := fmt.Sprintf("part_rules[%d]", i)
		if err := glob.ValidatePattern(r.Pattern); err != nil {
			errf("%s: %v", where, err)
		}
		p.checkPrimitive(where, r.Primitive, r.Params, partKnown, errf)
	}
	return issues
}

func (p *Parser) checkPrimitive(where, name string, params motion.Params, known map[string]bool, errf func(string, ...any)) {
	if _, ok := p.catalog.Lookup(name); !ok {
		errf("%s: %v: %q", where, ErrUnknownPrimitive, name)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := expr.Check(params[k], known); err != nil {
			errf("%s: param %q: %v", where, k, err)
		}
	}
}
