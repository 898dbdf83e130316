// Package motion holds the data model shared by the resolution tiers: template
// definitions, skeleton parts, overrides and the emitted motion plan.
package motion

// Params maps a primitive parameter name to its raw value: a number, a
// numeric string, or a {{expression}} string.
type Params map[string]any

// Primitive names a motion primitive together with its raw params.
type Primitive struct {
	Primitive string `json:"primitive" yaml:"primitive"`
	Params    Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// PartRule binds a primitive to every part matching Pattern.
type PartRule struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Primitive string `json:"primitive" yaml:"primitive"`
	Params    Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// AdverbOverride is one adverb_map entry. Either field may be absent.
type AdverbOverride struct {
	Speed          *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	AmplitudeScale *float64 `json:"amplitude_scale,omitempty" yaml:"amplitude_scale,omitempty"`
}

// Defaults carries a template's baseline scalars.
type Defaults struct {
	Speed          float64                   `json:"speed" yaml:"speed"`
	AmplitudeScale *float64                  `json:"amplitude_scale,omitempty" yaml:"amplitude_scale,omitempty"`
	Vars           map[string]float64        `json:"vars,omitempty" yaml:"vars,omitempty"`
	AdverbMap      map[string]AdverbOverride `json:"adverb_map,omitempty" yaml:"adverb_map,omitempty"`
}

// Template is one animation template definition.
type Template struct {
	ID            string         `json:"template_id" yaml:"template_id"`
	AnchorVerbs   []string       `json:"anchor_verbs" yaml:"anchor_verbs"`
	ClassTag      string         `json:"verbnet_class,omitempty" yaml:"verbnet_class,omitempty"`
	ThematicRoles map[string]any `json:"thematic_roles,omitempty" yaml:"thematic_roles,omitempty"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	WholeBody     Primitive      `json:"whole_body" yaml:"whole_body"`
	PartRules     []PartRule     `json:"part_rules,omitempty" yaml:"part_rules,omitempty"`
	Defaults      Defaults       `json:"defaults" yaml:"defaults"`
}

// DefaultAmplitude returns the template amplitude scale, 1 when unset.
func (t *Template) DefaultAmplitude() float64 {
	if t.Defaults.AmplitudeScale != nil {
		return *t.Defaults.AmplitudeScale
	}
	return 1
}

// DefaultSpeed returns the template speed, 1 when unset or non-positive.
func (t *Template) DefaultSpeed() float64 {
	if t.Defaults.Speed > 0 {
		return t.Defaults.Speed
	}
	return 1
}

// PartInfo is one node of a skeleton. ParentID is nil for the root.
type PartInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
}

// Overrides are adjustments layered onto a template's defaults.
type Overrides struct {
	Speed          *float64 `json:"speed,omitempty"`
	AmplitudeScale *float64 `json:"amplitude_scale,omitempty"`
}

// Empty reports whether no field is set.
func (o Overrides) Empty() bool {
	return o.Speed == nil && o.AmplitudeScale == nil
}

// Float returns a pointer to v, for building overrides literally.
func Float(v float64) *float64 { return &v }

// WholeBodyPlan is the whole-skeleton portion of a plan.
type WholeBodyPlan struct {
	Active      bool               `json:"active"`
	PrimitiveID int                `json:"primitive_id"`
	Duration    float64            `json:"duration"`
	Params      map[string]float64 `json:"params"`
}

// PlanEntry is the motion assigned to one part.
type PlanEntry struct {
	PrimitiveID int                `json:"primitive_id"`
	Duration    float64            `json:"duration"`
	Params      map[string]float64 `json:"params"`
}

// Plan is the concrete motion emitted for one template on one skeleton.
// Parts has one slot per input PartInfo, indexed by PartInfo.ID; nil slots
// carry no motion. Duration 0 means looping.
type Plan struct {
	WholeBody  WholeBodyPlan `json:"whole_body"`
	Parts      []*PlanEntry  `json:"parts"`
	SpeedScale float64       `json:"speed_scale"`
}
