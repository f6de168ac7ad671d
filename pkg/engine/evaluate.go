package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// Evaluator runs rule sets. The zero value is not usable; create one with New.
type Evaluator struct {
	Logger *log.Logger

	// NewID generates violation ids.
	NewID func() string

	// Now stamps violations.
	Now func() time.Time
}

// New creates an Evaluator with uuid ids and wall-clock timestamps.
// A nil logger discards output.
func New(logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Evaluator{
		Logger: logger,
		NewID:  func() string { return uuid.NewString() },
		Now:    time.Now,
	}
}

// Evaluate runs rs with a default Evaluator.
func Evaluate(rs []rules.Rule, panels []design.Panel, placements []design.CanvasComponent, catalog *design.Catalog) []rules.Violation {
	return New(nil).Evaluate(rs, panels, placements, catalog)
}

// Evaluate returns every violation of the enabled rules in rs.
func (e *Evaluator) Evaluate(rs []rules.Rule, panels []design.Panel, placements []design.CanvasComponent, catalog *design.Catalog) []rules.Violation {
	var panelRules, globalRules, componentRules []rules.Rule
	for _, r := range rules.Enabled(rs) {
		switch r.Scope {
		case rules.ScopePanel:
			panelRules = append(panelRules, r)
		case rules.ScopeGlobal:
			globalRules = append(globalRules, r)
		case rules.ScopeComponent:
			componentRules = append(componentRules, r)
		default:
			e.Logger.Debug("skipping rule with unknown scope", "rule", r.ID, "scope", r.Scope)
		}
	}

	byPanel := make(map[string][]design.CanvasComponent, len(panels))
	for _, p := range placements {
		byPanel[p.PanelID] = append(byPanel[p.PanelID], p)
	}

	var out []rules.Violation
	for i := range panels {
		panel := &panels[i]
		for _, r := range panelRules {
			if !r.AppliesToPanel(panel.ID) {
				continue
			}
			out = append(out, e.evaluateRule(e.newScope(r, panel, panels, byPanel[panel.ID], placements, catalog))...)
		}
	}

	var context *design.Panel
	if len(panels) > 0 {
		context = &panels[0]
	}
	for _, r := range globalRules {
		out = append(out, e.evaluateRule(e.newScope(r, context, panels, placements, placements, catalog))...)
	}

	for i := range panels {
		panel := &panels[i]
		for _, r := range componentRules {
			out = append(out, e.evaluateRule(e.newScope(r, panel, panels, byPanel[panel.ID], placements, catalog))...)
		}
	}

	e.Logger.Debug("evaluated rules", "rules", len(rs), "panels", len(panels), "violations", len(out))
	return out
}

// evaluateRule gates on conditions, then checks every constraint.
func (e *Evaluator) evaluateRule(sc *scope) []rules.Violation {
	if !conditionsHold(sc) {
		e.Logger.Debug("rule conditions not met", "rule", sc.rule.ID, "panel", sc.panelID())
		return nil
	}
	var out []rules.Violation
	for _, c := range sc.rule.Constraints {
		out = append(out, e.check(c, sc)...)
	}
	return out
}

// violation fills the fields every violation shares.
func (e *Evaluator) violation(sc *scope, c rules.Constraint, severity rules.Severity, msg string) rules.Violation {
	return rules.Violation{
		ID:        e.NewID(),
		RuleID:    sc.rule.ID,
		RuleName:  sc.rule.Name,
		Kind:      c.Kind(),
		Message:   msg,
		Severity:  severity,
		PanelID:   sc.panelID(),
		Timestamp: e.Now(),
	}
}
