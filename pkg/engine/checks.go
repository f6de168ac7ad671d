package engine

import (
	"strconv"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/geometry"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// check dispatches a constraint to its evaluator. Filter, layout and
// unknown kinds produce no violations.
func (e *Evaluator) check(c rules.Constraint, sc *scope) []rules.Violation {
	switch c := c.(type) {
	case *rules.Overlap:
		return e.checkOverlap(c, sc)
	case *rules.Bounds:
		return e.checkBounds(c, sc)
	case *rules.Spacing:
		return e.checkSpacing(c, sc)
	case *rules.Count:
		return e.checkCount(c, sc)
	case *rules.Dimension:
		return e.checkDimension(c, sc)
	case *rules.CoUsage:
		return e.checkCoUsage(c, sc)
	case *rules.NoIntersectWithPanelBounds:
		return e.checkNoIntersect(c, sc)
	default:
		return nil
	}
}

func (e *Evaluator) checkOverlap(c *rules.Overlap, sc *scope) []rules.Violation {
	var out []rules.Violation
	for _, pair := range geometry.CheckOverlaps(sc.placements, sc.catalog) {
		if !sc.pairInFocus(pair.I, pair.J) {
			continue
		}
		msg := render(c, `"{component}" overlaps "{other}"`, sc.vars(vars{
			"component": sc.name(pair.A),
			"other":     sc.name(pair.B),
		}))
		v := e.violation(sc, c, rules.SeverityError, msg)
		v.ComponentIDs = []string{pair.A, pair.B}
		out = append(out, v)
	}
	return out
}

func (e *Evaluator) checkBounds(c *rules.Bounds, sc *scope) []rules.Violation {
	focus := sc.focus()
	panelOf := make(map[string]string, len(focus))
	for _, p := range focus {
		panelOf[p.ID] = p.PanelID
	}

	var out []rules.Violation
	for _, id := range geometry.OutOfBoundsComponents(focus, sc.catalog, sc.panels) {
		panelName := panelOf[id]
		if panel, ok := design.FindPanel(sc.panels, panelOf[id]); ok && panel.Name != "" {
			panelName = panel.Name
		}
		msg := render(c, `"{component}" extends beyond panel "{panel}"`, sc.vars(vars{
			"component": sc.name(id),
			"panel":     panelName,
		}))
		v := e.violation(sc, c, rules.SeverityError, msg)
		v.ComponentID = id
		out = append(out, v)
	}
	return out
}

func (e *Evaluator) checkSpacing(c *rules.Spacing, sc *scope) []rules.Violation {
	if c.Spacing == nil {
		return nil
	}
	minSpacing := *c.Spacing
	var out []rules.Violation
	for _, issue := range geometry.CheckSpacing(sc.placements, sc.catalog, minSpacing) {
		if !sc.pairInFocus(issue.I, issue.J) {
			continue
		}
		msg := render(c, `"{component}" and "{other}" are {distance}mm apart (minimum {min}mm)`, sc.vars(vars{
			"component": sc.name(issue.A),
			"other":     sc.name(issue.B),
			"distance":  distance(issue.Distance),
			"min":       num(minSpacing),
		}))
		v := e.violation(sc, c, rules.SeverityWarning, msg)
		v.ComponentIDs = []string{issue.A, issue.B}
		out = append(out, v)
	}
	return out
}

func (e *Evaluator) checkCount(c *rules.Count, sc *scope) []rules.Violation {
	n := len(sc.focus())
	var out []rules.Violation
	if c.Max != nil && n > *c.Max {
		msg := render(c, "{count} components placed, at most {max} allowed", sc.vars(vars{
			"count": strconv.Itoa(n),
			"max":   strconv.Itoa(*c.Max),
		}))
		out = append(out, e.violation(sc, c, rules.SeverityError, msg))
	}
	if c.Min != nil && n < *c.Min {
		msg := render(c, "{count} components placed, at least {min} required", sc.vars(vars{
			"count": strconv.Itoa(n),
			"min":   strconv.Itoa(*c.Min),
		}))
		out = append(out, e.violation(sc, c, rules.SeverityWarning, msg))
	}
	return out
}

func (e *Evaluator) checkDimension(c *rules.Dimension, sc *scope) []rules.Violation {
	if c.Property == nil || sc.panel == nil {
		return nil
	}
	var value float64
	switch *c.Property {
	case rules.DimensionWidth:
		value = sc.panel.Width
	case rules.DimensionHeight:
		value = sc.panel.Height
	default:
		return nil
	}
	prop := string(*c.Property)

	var out []rules.Violation
	if c.Min != nil && value < *c.Min {
		msg := render(c, `Panel "{panel}" `+prop+` {value}mm is below the minimum of {min}mm`, sc.vars(vars{
			"value": num(value),
			"min":   num(*c.Min),
		}))
		out = append(out, e.violation(sc, c, rules.SeverityError, msg))
	}
	if c.Max != nil && value > *c.Max {
		msg := render(c, `Panel "{panel}" `+prop+` {value}mm exceeds the maximum of {max}mm`, sc.vars(vars{
			"value": num(value),
			"max":   num(*c.Max),
		}))
		out = append(out, e.violation(sc, c, rules.SeverityError, msg))
	}
	return out
}

func (e *Evaluator) checkNoIntersect(c *rules.NoIntersectWithPanelBounds, sc *scope) []rules.Violation {
	if len(c.PanelIDs) < 2 {
		return nil
	}
	var focus []design.CanvasComponent
	for _, p := range sc.placements {
		if sc.isTarget(p) {
			focus = append(focus, p)
		}
	}
	var out []rules.Violation
	for _, id := range geometry.IntersectsPanelBounds(focus, sc.catalog, sc.panels, c.PanelIDs) {
		msg := render(c, `"{component}" crosses into a neighboring panel`, sc.vars(vars{
			"component": sc.name(id),
		}))
		v := e.violation(sc, c, rules.SeverityError, msg)
		v.ComponentID = id
		out = append(out, v)
	}
	return out
}
