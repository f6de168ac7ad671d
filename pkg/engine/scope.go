package engine

import (
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// scope is everything one rule evaluation can see.
type scope struct {
	rule rules.Rule

	// panel is the context panel; nil for a global rule in a design with no panels.
	panel  *design.Panel
	panels []design.Panel

	// placements are the non-gap placements the rule covers; all is the
	// whole design.
	placements []design.CanvasComponent
	all        []design.CanvasComponent

	catalog *design.Catalog
}

func (e *Evaluator) newScope(r rules.Rule, panel *design.Panel, panels []design.Panel, placements, all []design.CanvasComponent, catalog *design.Catalog) *scope {
	return &scope{
		rule:       r,
		panel:      panel,
		panels:     panels,
		placements: withoutGaps(placements),
		all:        withoutGaps(all),
		catalog:    catalog,
	}
}

func (sc *scope) panelID() string {
	if sc.rule.Scope == rules.ScopeGlobal || sc.panel == nil {
		return ""
	}
	return sc.panel.ID
}

// targeted reports whether a component rule narrows to one catalog id.
func (sc *scope) targeted() bool {
	return sc.rule.Scope == rules.ScopeComponent && sc.rule.ComponentID != ""
}

// isTarget reports whether a placement is in the rule's focus. Rules that
// do not narrow to a catalog id focus on every placement.
func (sc *scope) isTarget(p design.CanvasComponent) bool {
	return !sc.targeted() || p.ComponentID == sc.rule.ComponentID
}

// focus returns the placements in focus. Placements are kept even when
// their ids are empty or repeated.
func (sc *scope) focus() []design.CanvasComponent {
	out := make([]design.CanvasComponent, 0, len(sc.placements))
	for _, p := range sc.placements {
		if sc.isTarget(p) {
			out = append(out, p)
		}
	}
	return out
}

// pairInFocus reports whether either placement of a pair, given by index
// into sc.placements, is in focus.
func (sc *scope) pairInFocus(i, j int) bool {
	return sc.isTarget(sc.placements[i]) || sc.isTarget(sc.placements[j])
}

// name returns the display name of the catalog item behind a placement id.
func (sc *scope) name(placementID string) string {
	for _, p := range sc.all {
		if p.ID == placementID {
			return sc.catalog.Name(p.ComponentID)
		}
	}
	return placementID
}

func (sc *scope) panelName() string {
	if sc.panel == nil {
		return ""
	}
	if sc.panel.Name != "" {
		return sc.panel.Name
	}
	return sc.panel.ID
}

func withoutGaps(placements []design.CanvasComponent) []design.CanvasComponent {
	out := make([]design.CanvasComponent, 0, len(placements))
	for _, p := range placements {
		if !p.IsGap() {
			out = append(out, p)
		}
	}
	return out
}

// present returns the set of catalog ids used by placements.
func present(placements []design.CanvasComponent) map[string]bool {
	ids := make(map[string]bool, len(placements))
	for _, p := range placements {
		ids[p.ComponentID] = true
	}
	return ids
}
