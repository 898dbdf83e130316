// Package parttype classifies skeleton part names into canonical semantic
// types. The parser uses it as a second-chance matching strategy when a part
// rule's glob matches nothing by name.
package parttype

import (
	"regexp"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// Type is a canonical part category.
type Type string

const (
	Head      Type = "head"
	Tail      Type = "tail"
	Rotation  Type = "rotation"
	Limb      Type = "limb"
	Trunk     Type = "trunk"
	Surface   Type = "surface"
	Appendage Type = "appendage"
	Body      Type = "body"
)

// Rule maps names matching Pattern to Type.
type Rule struct {
	Type    Type
	Pattern *regexp.Regexp
}

// Rules is an ordered rule table; the first matching rule wins.
type Rules []Rule

// DefaultRules is the built-in table. Order matters: tail precedes limb so
// that "tail_fin" is a tail, and rotation precedes limb so that "rotor_arm"
// spins.
func DefaultRules() Rules {
	return Rules{
		{Tail, regexp.MustCompile(`tail`)},
		{Head, regexp.MustCompile(`head|skull|face|snout|muzzle|neck`)},
		{Rotation, regexp.MustCompile(`wheel|rotor|propeller|prop\b|fan|gear|turbine|engine`)},
		{Limb, regexp.MustCompile(`leg|arm|wing|fin|paw|foot|feet|hand|flipper|claw|hoof`)},
		{Trunk, regexp.MustCompile(`torso|chest|spine|thorax|abdomen|fuselage|hull|trunk|stem`)},
		{Surface, regexp.MustCompile(`windshield|window|roof|seat|backrest|canopy|leaf|leaves|shell|panel|wall|door|screen`)},
		{Appendage, regexp.MustCompile(`antenna|horn|ear|beak|tentacle|whisker|crest|mane|root|antler`)},
		{Body, regexp.MustCompile(`body|base|core|pelvis|hip|foundation|frame`)},
	}
}

// Infer returns the first rule type matching partName, or "" and false.
func (r Rules) Infer(partName string) (Type, bool) {
	n := normalize.Key(partName)
	if n == "" {
		return "", false
	}
	for _, rule := range r {
		if rule.Pattern.MatchString(n) {
			return rule.Type, true
		}
	}
	return "", false
}

var defaultRules = DefaultRules()

// InferType classifies partName using DefaultRules.
func InferType(partName string) (Type, bool) {
	return defaultRules.Infer(partName)
}
