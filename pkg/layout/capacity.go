package layout

import (
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// MaxHeight returns the total height available for stacking on the panel.
// An explicit maxComponentHeight wins; otherwise (automatic, or no
// constraint at all) it is the panel height minus the resolved gap sizes.
// Constraints resolve like gaps: the most specific rule wins.
func MaxHeight(panel design.Panel, rs []rules.Rule, library []design.Panel) float64 {
	var best *rules.MaxComponentHeight
	var rank match
	for _, b := range rules.ConstraintsOf(rules.Enabled(rs), rules.KindMaxComponentHeight) {
		m := matchPanel(b.Rule, panel, library)
		if m > rank {
			best, rank = b.Constraint.(*rules.MaxComponentHeight), m
		}
	}
	if best != nil && best.Height != nil && (best.Automatic == nil || !*best.Automatic) {
		return *best.Height
	}
	g := GapSizes(panel, rs, library)
	return panel.Height - g.Top - g.Bottom
}

// UsedHeight returns the height taken by the panel's non-gap placements,
// including the spacing between them.
func UsedHeight(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog) float64 {
	var used float64
	items := stacked(panel.ID, placements, catalog)
	for n, it := range items {
		if n > 0 {
			used += gapBefore(items[n-1].combinator, it.combinator)
		}
		used += it.height
	}
	return used
}

// AvailableHeight returns MaxHeight minus UsedHeight.
func AvailableHeight(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel) float64 {
	return MaxHeight(panel, rs, library) - UsedHeight(panel, placements, catalog)
}

// CheckCapacity rejects an item of the given height that does not fit on the
// panel. When the panel already holds items, the spacing before the new one
// counts against the available height.
func CheckCapacity(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel, height float64) error {
	need := height
	if len(stacked(panel.ID, placements, catalog)) > 0 {
		need += Spacing
	}
	available := AvailableHeight(panel, placements, catalog, rs, library)
	if need > available {
		return errors.New(errors.ErrCodeInsufficientHeight,
			"needs %gmm but only %gmm is available on panel %s", need, available, panel.ID)
	}
	return nil
}
