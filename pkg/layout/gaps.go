package layout

import (
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// Spacing is the vertical distance between consecutive stacked items, in
// millimeters.
const Spacing = 10.0

// Gaps holds the gap sizes resolved for one panel.
type Gaps struct {
	Top, Bottom       float64
	HasTop, HasBottom bool
}

// match ranks how specifically a rule targets a panel. Higher wins.
type match int

const (
	noMatch match = iota
	unscoped
	byLibraryWidth
	byPanelID
)

// matchPanel reports how a rule's panelId refers to panel: directly, through
// a library panel of the same width, or not at all. Rules without a panelId
// apply to every panel.
func matchPanel(r rules.Rule, panel design.Panel, library []design.Panel) match {
	switch {
	case r.PanelID == "":
		return unscoped
	case r.PanelID == panel.ID:
		return byPanelID
	}
	if lib, ok := design.FindPanel(library, r.PanelID); ok && lib.Width == panel.Width {
		return byLibraryWidth
	}
	return noMatch
}

// GapSizes resolves the top and bottom gap constraints for a panel. When
// several rules match, the most specific wins; among equally specific rules,
// the first one does.
func GapSizes(panel design.Panel, rs []rules.Rule, library []design.Panel) Gaps {
	var g Gaps
	var topRank, bottomRank match
	for _, b := range rules.ConstraintsOf(rules.Enabled(rs), rules.KindGap) {
		gap := b.Constraint.(*rules.Gap)
		if gap.Placement == nil || gap.Size == nil {
			continue
		}
		m := matchPanel(b.Rule, panel, library)
		if m == noMatch {
			continue
		}
		switch *gap.Placement {
		case rules.GapTop:
			if m > topRank {
				g.Top, g.HasTop, topRank = *gap.Size, true, m
			}
		case rules.GapBottom:
			if m > bottomRank {
				g.Bottom, g.HasBottom, bottomRank = *gap.Size, true, m
			}
		}
	}
	return g
}

// ApplyGaps reconciles gap placements with the gap constraints in rs and
// restacks every panel. A gap placement is created or updated for each
// resolved constraint and removed when its constraint is gone. Placements on
// panels not in panels are left as they are. Applying twice yields the same
// result as applying once.
func ApplyGaps(panels []design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel) []design.CanvasComponent {
	out := design.Clone(placements)
	for _, panel := range panels {
		out = applyPanelGaps(panel, out, catalog, rs, library)
	}
	return out
}

// applyPanelGaps reconciles one panel's gap placements in place and restacks it.
func applyPanelGaps(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel) []design.CanvasComponent {
	g := GapSizes(panel, rs, library)
	placements = upsertGap(placements, panel.ID, true, g.Top, g.HasTop)
	placements = upsertGap(placements, panel.ID, false, g.Bottom, g.HasBottom)
	return restack(panel, placements, catalog)
}

func upsertGap(placements []design.CanvasComponent, panelID string, top bool, height float64, want bool) []design.CanvasComponent {
	id := design.BottomGapID(panelID)
	order := design.BottomGapOrder
	if top {
		id = design.TopGapID(panelID)
		order = design.TopGapOrder
	}

	for i := range placements {
		if placements[i].ID != id {
			continue
		}
		if !want {
			return append(placements[:i], placements[i+1:]...)
		}
		h := height
		placements[i].Properties.GapHeight = &h
		placements[i].Properties.Order = order
		return placements
	}
	if want {
		placements = append(placements, design.NewGap(panelID, top, height))
	}
	return placements
}
