package rules

import (
	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Scope selects which placements a rule is evaluated against.
type Scope string

// Rule scopes.
const (
	ScopeGlobal    Scope = "global"
	ScopePanel     Scope = "panel"
	ScopeComponent Scope = "component"
)

// Rule is a scoped, conditional bundle of constraints.
type Rule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Scope       Scope   `json:"scope"`

	// PanelID narrows a panel rule to one panel. For gap rules it may also
	// name a library panel, matching design panels of the same width.
	PanelID string `json:"panelId,omitempty"`

	// ComponentID names the catalog entry a component rule targets.
	ComponentID string `json:"componentId,omitempty"`

	Enabled bool `json:"enabled"`

	// Logic is how the rule editor joined the conditions ("and" or "or").
	// It is preserved on export; evaluation always requires every condition.
	Logic string `json:"logic,omitempty"`

	Conditions  []Condition `json:"conditions,omitzero"`
	Constraints Constraints `json:"constraints,omitzero"`
}

// AppliesToPanel reports whether a panel-scoped rule covers panelID.
func (r Rule) AppliesToPanel(panelID string) bool {
	return r.PanelID == "" || r.PanelID == panelID
}

// Validate checks the rule's id, scope and conditions. Constraint payloads
// are not validated: malformed constraints are no-ops at evaluation time.
func (r Rule) Validate() error {
	if err := errors.ValidateID("rule", r.ID); err != nil {
		return err
	}
	switch r.Scope {
	case ScopeGlobal, ScopePanel, ScopeComponent:
	default:
		return errors.New(errors.ErrCodeInvalidRule, "rule %s: unknown scope %q", r.ID, r.Scope)
	}
	for i, c := range r.Conditions {
		if err := c.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRule, err, "rule %s: condition %d", r.ID, i)
		}
	}
	return nil
}

// Enabled returns the enabled rules in input order.
func Enabled(rs []Rule) []Rule {
	out := make([]Rule, 0, len(rs))
	for _, r := range rs {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// ConstraintsOf returns every constraint of kind k across the given rules,
// paired with the rule that carries it.
func ConstraintsOf(rs []Rule, k Kind) []Bound {
	var out []Bound
	for _, r := range rs {
		for _, c := range r.Constraints {
			if c.Kind() == k {
				out = append(out, Bound{Rule: r, Constraint: c})
			}
		}
	}
	return out
}

// Bound pairs a constraint with its owning rule.
type Bound struct {
	Rule       Rule
	Constraint Constraint
}
