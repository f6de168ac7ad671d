package layout

import (
	"sort"

	"github.com/matzehuels/cabinetry/pkg/design"
)

// item is a non-gap placement resolved against the catalog.
type item struct {
	idx        int
	width      float64
	height     float64
	combinator bool
	resolved   bool
}

func resolve(p design.CanvasComponent, idx int, catalog *design.Catalog) item {
	w, h, ok := catalog.Footprint(p.ComponentID)
	return item{idx: idx, width: w, height: h, combinator: catalog.IsCombinator(p.ComponentID), resolved: ok}
}

// gapBefore returns the spacing between two consecutive items.
func gapBefore(prevCombinator, combinator bool) float64 {
	if prevCombinator && combinator {
		return 0
	}
	return Spacing
}

// stacked returns the panel's non-gap placements sorted by order. Ties keep
// slice order.
func stacked(panelID string, placements []design.CanvasComponent, catalog *design.Catalog) []item {
	var items []item
	for i, p := range placements {
		if p.PanelID == panelID && !p.IsGap() {
			items = append(items, resolve(p, i, catalog))
		}
	}
	sort.SliceStable(items, func(a, b int) bool {
		return placements[items[a].idx].Properties.Order < placements[items[b].idx].Properties.Order
	})
	return items
}

func findGap(placements []design.CanvasComponent, id string) int {
	for i := range placements {
		if placements[i].ID == id {
			return i
		}
	}
	return -1
}

// Restack recomputes order and position of every placement on the panel.
// Non-gap items keep their relative order, are renumbered from 0 (or from 1
// when the panel has a top gap) and are stacked below the top gap.
// Placements whose catalog entry is missing keep their x and occupy no
// height.
func Restack(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog) []design.CanvasComponent {
	return restack(panel, design.Clone(placements), catalog)
}

// restack is Restack in place.
func restack(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog) []design.CanvasComponent {
	return arrange(panel, placements, stacked(panel.ID, placements, catalog))
}

// arrange assigns orders and positions to items in the given sequence.
func arrange(panel design.Panel, placements []design.CanvasComponent, items []item) []design.CanvasComponent {
	var y float64
	base := 0
	if i := findGap(placements, design.TopGapID(panel.ID)); i >= 0 {
		top := &placements[i]
		top.Position = design.Position{}
		top.Properties.Order = design.TopGapOrder
		y = top.GapHeight()
		base = 1
	}

	for n, it := range items {
		if n > 0 {
			y += gapBefore(items[n-1].combinator, it.combinator)
		}
		p := &placements[it.idx]
		p.Properties.Order = base + n
		p.Position.Y = y
		if it.resolved {
			p.Position.X = (panel.Width - it.width) / 2
		}
		y += it.height
	}

	if i := findGap(placements, design.BottomGapID(panel.ID)); i >= 0 {
		bottom := &placements[i]
		bottom.Position = design.Position{Y: y}
		bottom.Properties.Order = design.BottomGapOrder
	}
	return placements
}
