package rules

import "encoding/json"

// Kind is the "type" discriminant of a constraint.
type Kind string

// Constraint kinds.
const (
	KindOverlap                    Kind = "overlap"
	KindBounds                     Kind = "bounds"
	KindSpacing                    Kind = "spacing"
	KindCount                      Kind = "count"
	KindDimension                  Kind = "dimension"
	KindCoUsage                    Kind = "co-usage"
	KindPanelSizeMapping           Kind = "panelSizeMapping"
	KindCombinatorPanelSizeMapping Kind = "combinatorPanelSizeMapping"
	KindCombinatorBrandMapping     Kind = "combinatorPanelBrandMapping"
	KindCombinatorSeriesMapping    Kind = "combinatorPanelSeriesMapping"
	KindCombinatorCurrentMapping   Kind = "combinatorPanelCurrentMapping"
	KindCombinatorPoleMapping      Kind = "combinatorPanelPoleMapping"
	KindCombinatorSpecMapping      Kind = "combinatorSpecMapping"
	KindGap                        Kind = "gap"
	KindMaxComponentHeight         Kind = "maxComponentHeight"
	KindNoIntersectWithPanelBounds Kind = "noIntersectWithPanelBounds"
)

// Constraint is one declarative check or filter inside a rule.
type Constraint interface {
	// Kind returns the constraint's type discriminant.
	Kind() Kind
	// Template returns the user-facing message template, or "" if none is set.
	Template() string
}

// Base carries the fields shared by every constraint kind.
type Base struct {
	Message *string `json:"message,omitempty"`

	// nulls lists the members that were explicitly null when decoded.
	// They are written back as null unless the field has since been set.
	nulls []string
}

func (b *Base) nullMembers() []string       { return b.nulls }
func (b *Base) setNullMembers(keys []string) { b.nulls = keys }

// nullTracker is implemented by every known constraint through [Base].
type nullTracker interface {
	nullMembers() []string
	setNullMembers([]string)
}

// Template returns the message template or "".
func (b Base) Template() string {
	if b.Message == nil {
		return ""
	}
	return *b.Message
}

// Overlap forbids placements on one panel from overlapping.
type Overlap struct {
	Base
}

// Bounds requires placements to stay inside their panel.
type Bounds struct {
	Base
}

// Spacing requires a minimum edge distance between placements.
// A nil Spacing makes the constraint a no-op.
type Spacing struct {
	Base
	Spacing *float64 `json:"spacing,omitempty"`
}

// Count bounds the number of placements in scope.
type Count struct {
	Base
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// DimensionProperty selects the panel dimension checked by [Dimension].
type DimensionProperty string

// Dimension properties.
const (
	DimensionWidth  DimensionProperty = "width"
	DimensionHeight DimensionProperty = "height"
)

// Dimension bounds a panel dimension.
type Dimension struct {
	Base
	Property *DimensionProperty `json:"property,omitempty"`
	Min      *float64           `json:"min,omitempty"`
	Max      *float64           `json:"max,omitempty"`
}

// CoUsage requires other components to be present alongside.
type CoUsage struct {
	Base
	RequiredComponentIDs []string `json:"requiredComponentIds,omitzero"`
}

// PanelSizeMapping restricts the component types offered for a panel size.
type PanelSizeMapping struct {
	Base
	PanelSize      *string  `json:"panelSize,omitempty"`
	ComponentTypes []string `json:"componentTypes,omitzero"`
}

// CombinatorPanelSizeMapping restricts combinators to those built for a panel size.
type CombinatorPanelSizeMapping struct {
	Base
	PanelSize *string `json:"panelSize,omitempty"`
}

// MappingProperty names the combinator attribute a [CombinatorPropertyMapping] filters on.
type MappingProperty string

// Combinator mapping properties.
const (
	MappingBrand   MappingProperty = "brand"
	MappingSeries  MappingProperty = "series"
	MappingCurrent MappingProperty = "current"
	MappingPole    MappingProperty = "pole"
)

// CombinatorPropertyMapping restricts combinators to a set of brand, series,
// current or pole values. One struct backs the four combinatorPanel*Mapping
// kinds; Property selects which.
type CombinatorPropertyMapping struct {
	Base
	Property       MappingProperty `json:"-"`
	PropertyValues []string        `json:"propertyValues,omitzero"`
}

// CombinatorSpecMapping restricts combinators by the value of one spec key.
type CombinatorSpecMapping struct {
	Base
	SpecKey    *string  `json:"specKey,omitempty"`
	SpecValues []string `json:"specValues,omitzero"`
}

// GapPlacement is the panel edge a [Gap] reserves.
type GapPlacement string

// Gap placements.
const (
	GapTop    GapPlacement = "top"
	GapBottom GapPlacement = "bottom"
)

// Gap reserves an empty band of Size millimeters at the top or bottom of a panel.
type Gap struct {
	Base
	Placement *GapPlacement `json:"placement,omitempty"`
	Size      *float64      `json:"size,omitempty"`
}

// MaxComponentHeight caps the total stacked height on a panel. With
// Automatic set the cap is the panel height minus the configured gaps.
type MaxComponentHeight struct {
	Base
	Automatic *bool    `json:"automatic,omitempty"`
	Height    *float64 `json:"height,omitempty"`
}

// NoIntersectWithPanelBounds forbids placements from reaching into the
// listed panels from a neighboring one.
type NoIntersectWithPanelBounds struct {
	Base
	PanelIDs []string `json:"panelIds,omitzero"`
}

// Unknown preserves a constraint whose type is not recognized.
type Unknown struct {
	Type Kind
	Raw  json.RawMessage
}

func (*Overlap) Kind() Kind                    { return KindOverlap }
func (*Bounds) Kind() Kind                     { return KindBounds }
func (*Spacing) Kind() Kind                    { return KindSpacing }
func (*Count) Kind() Kind                      { return KindCount }
func (*Dimension) Kind() Kind                  { return KindDimension }
func (*CoUsage) Kind() Kind                    { return KindCoUsage }
func (*PanelSizeMapping) Kind() Kind           { return KindPanelSizeMapping }
func (*CombinatorPanelSizeMapping) Kind() Kind { return KindCombinatorPanelSizeMapping }
func (*CombinatorSpecMapping) Kind() Kind      { return KindCombinatorSpecMapping }
func (*Gap) Kind() Kind                        { return KindGap }
func (*MaxComponentHeight) Kind() Kind         { return KindMaxComponentHeight }
func (*NoIntersectWithPanelBounds) Kind() Kind { return KindNoIntersectWithPanelBounds }
func (u *Unknown) Kind() Kind                  { return u.Type }

// Template returns the message field of the raw constraint, if any.
func (u *Unknown) Template() string {
	var b Base
	_ = json.Unmarshal(u.Raw, &b)
	return b.Template()
}

// Kind returns the mapping kind for the configured property.
func (m *CombinatorPropertyMapping) Kind() Kind {
	switch m.Property {
	case MappingBrand:
		return KindCombinatorBrandMapping
	case MappingSeries:
		return KindCombinatorSeriesMapping
	case MappingCurrent:
		return KindCombinatorCurrentMapping
	default:
		return KindCombinatorPoleMapping
	}
}

// IsFilter reports whether a constraint kind restricts catalog selection
// instead of producing violations.
func IsFilter(k Kind) bool {
	switch k {
	case KindPanelSizeMapping, KindCombinatorPanelSizeMapping,
		KindCombinatorBrandMapping, KindCombinatorSeriesMapping,
		KindCombinatorCurrentMapping, KindCombinatorPoleMapping,
		KindCombinatorSpecMapping:
		return true
	}
	return false
}

// IsLayout reports whether a constraint kind is consumed by the layout
// algorithm instead of the violation evaluators.
func IsLayout(k Kind) bool {
	return k == KindGap || k == KindMaxComponentHeight
}
