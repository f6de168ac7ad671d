package engine

import (
	"slices"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// selectionRules returns the enabled rules that may restrict what is offered
// for a panel: global rules and panel rules that apply to it. Conditions are
// not consulted; they describe placements, which selection happens before.
func selectionRules(panel design.Panel, rs []rules.Rule) []rules.Rule {
	var out []rules.Rule
	for _, r := range rules.Enabled(rs) {
		switch r.Scope {
		case rules.ScopeGlobal:
			out = append(out, r)
		case rules.ScopePanel:
			if r.AppliesToPanel(panel.ID) {
				out = append(out, r)
			}
		}
	}
	return out
}

// AllowedComponentTypes returns the component types that panelSizeMapping
// constraints allow on the panel. restricted is false when no mapping
// matches the panel's size, in which case every type is allowed.
func AllowedComponentTypes(panel design.Panel, rs []rules.Rule) (types []string, restricted bool) {
	for _, b := range rules.ConstraintsOf(selectionRules(panel, rs), rules.KindPanelSizeMapping) {
		m := b.Constraint.(*rules.PanelSizeMapping)
		if m.PanelSize == nil || !panel.MatchesSize(*m.PanelSize) {
			continue
		}
		restricted = true
		for _, t := range m.ComponentTypes {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types, restricted
}

// FilterComponents returns the components whose type is allowed on the panel.
func FilterComponents(panel design.Panel, rs []rules.Rule, components []design.Component) []design.Component {
	types, restricted := AllowedComponentTypes(panel, rs)
	if !restricted {
		return slices.Clone(components)
	}
	var out []design.Component
	for _, c := range components {
		if slices.Contains(types, c.Type) {
			out = append(out, c)
		}
	}
	return out
}

// AllowedCombinators returns the combinators every combinator mapping
// constraint admits for the panel.
func AllowedCombinators(panel design.Panel, rs []rules.Rule, combinators []design.Combinator) []design.Combinator {
	sel := selectionRules(panel, rs)
	var out []design.Combinator
	for _, cb := range combinators {
		if combinatorAllowed(panel, sel, cb) {
			out = append(out, cb)
		}
	}
	return out
}

// CombinatorAllowed reports whether a single combinator may be offered for
// the panel.
func CombinatorAllowed(panel design.Panel, rs []rules.Rule, cb design.Combinator) bool {
	return combinatorAllowed(panel, selectionRules(panel, rs), cb)
}

func combinatorAllowed(panel design.Panel, sel []rules.Rule, cb design.Combinator) bool {
	for _, r := range sel {
		for _, c := range r.Constraints {
			if !admits(panel, c, cb) {
				return false
			}
		}
	}
	return true
}

// admits applies one mapping constraint to a combinator. An empty value
// list places no restriction.
func admits(panel design.Panel, c rules.Constraint, cb design.Combinator) bool {
	switch c := c.(type) {
	case *rules.CombinatorPanelSizeMapping:
		if c.PanelSize == nil || !panel.MatchesSize(*c.PanelSize) {
			return true
		}
		return cb.PanelSize == *c.PanelSize || panel.MatchesSize(cb.PanelSize)
	case *rules.CombinatorPropertyMapping:
		if len(c.PropertyValues) == 0 {
			return true
		}
		return slices.Contains(c.PropertyValues, propertyOf(cb, c.Property))
	case *rules.CombinatorSpecMapping:
		if c.SpecKey == nil || len(c.SpecValues) == 0 {
			return true
		}
		v, ok := cb.Spec(*c.SpecKey)
		return ok && slices.Contains(c.SpecValues, v)
	}
	return true
}

func propertyOf(cb design.Combinator, p rules.MappingProperty) string {
	switch p {
	case rules.MappingBrand:
		return cb.Brand
	case rules.MappingSeries:
		return cb.Series
	case rules.MappingCurrent:
		return cb.Current()
	case rules.MappingPole:
		return cb.Pole
	}
	return ""
}
