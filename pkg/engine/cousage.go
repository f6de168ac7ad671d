package engine

import (
	"strconv"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/rules"
)

// checkCoUsage selects one of three modes:
//
//   - a component rule naming a catalog id requires every listed id on the
//     same panel whenever that component is present, one violation per
//     missing id
//   - a panel rule requires every listed id on the panel, one violation
//     naming all missing ids
//   - anything else requires every listed id somewhere in the design, and
//     additionally enforces the catalog's per-component RequiredComponents
func (e *Evaluator) checkCoUsage(c *rules.CoUsage, sc *scope) []rules.Violation {
	switch {
	case sc.targeted():
		return e.coUsageComponent(c, sc)
	case sc.rule.Scope == rules.ScopePanel:
		return e.coUsageAll(c, sc, present(sc.placements))
	default:
		have := present(sc.all)
		return append(e.coUsageAll(c, sc, have), e.coUsageCatalog(c, sc, have)...)
	}
}

func (e *Evaluator) coUsageComponent(c *rules.CoUsage, sc *scope) []rules.Violation {
	have := present(sc.placements)
	target := sc.rule.ComponentID
	if !have[target] {
		return nil
	}
	var out []rules.Violation
	for _, req := range c.RequiredComponentIDs {
		if have[req] {
			continue
		}
		msg := render(c, `"{component}" requires "{missing}" on the same panel`, sc.vars(vars{
			"component": sc.catalog.Name(target),
			"missing":   sc.catalog.Name(req),
		}))
		v := e.violation(sc, c, rules.SeverityError, msg)
		v.ComponentID = target
		v.MissingComponentID = req
		out = append(out, v)
	}
	return out
}

// coUsageAll reports a single violation listing every required id absent
// from have. MissingComponentID carries the first of them.
func (e *Evaluator) coUsageAll(c *rules.CoUsage, sc *scope, have map[string]bool) []rules.Violation {
	var missing, names []string
	for _, req := range c.RequiredComponentIDs {
		if !have[req] {
			missing = append(missing, req)
			names = append(names, `"`+sc.catalog.Name(req)+`"`)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	def := "Required components missing from the design: {missing}"
	if sc.rule.Scope == rules.ScopePanel {
		def = `Required components missing from panel "{panel}": {missing}`
	}
	msg := render(c, def, sc.vars(vars{
		"missing": strings.Join(names, ", "),
		"count":   strconv.Itoa(len(missing)),
	}))
	v := e.violation(sc, c, rules.SeverityError, msg)
	v.MissingComponentID = missing[0]
	v.ComponentIDs = missing
	return []rules.Violation{v}
}

// coUsageCatalog enforces Component.RequiredComponents for every component
// used in the design. Each component is reported once per missing id, no
// matter how many times it is placed.
func (e *Evaluator) coUsageCatalog(c *rules.CoUsage, sc *scope, have map[string]bool) []rules.Violation {
	seen := make(map[string]bool)
	var out []rules.Violation
	for _, p := range sc.all {
		if seen[p.ComponentID] {
			continue
		}
		seen[p.ComponentID] = true
		comp, ok := sc.catalog.Component(p.ComponentID)
		if !ok {
			continue
		}
		for _, req := range comp.RequiredComponents {
			if have[req] {
				continue
			}
			msg := render(c, `"{component}" requires "{missing}"`, sc.vars(vars{
				"component": sc.catalog.Name(comp.ID),
				"missing":   sc.catalog.Name(req),
			}))
			v := e.violation(sc, c, rules.SeverityError, msg)
			v.ComponentID = comp.ID
			v.RequiredComponentID = req
			out = append(out, v)
		}
	}
	return out
}
