package engine

import (
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// conditionsHold reports whether every condition of the rule holds in sc.
// Conditions are a strict conjunction: the first failing one short-circuits,
// regardless of the rule's Logic field.
func conditionsHold(sc *scope) bool {
	for _, c := range sc.rule.Conditions {
		if !c.Compare(fieldValue(sc, c.Field)) {
			return false
		}
	}
	return true
}

// fieldValue resolves a condition field. Panel dimensions read as 0 when
// there is no context panel.
func fieldValue(sc *scope, f rules.Field) float64 {
	switch f {
	case rules.FieldComponentCount:
		return float64(len(sc.placements))
	case rules.FieldPanelWidth:
		if sc.panel != nil {
			return sc.panel.Width
		}
	case rules.FieldPanelHeight:
		if sc.panel != nil {
			return sc.panel.Height
		}
	}
	return 0
}
