package geometry

import (
	"github.com/matzehuels/cabinetry/pkg/design"
)

// Pair identifies two colliding placements by id.
type Pair struct {
	A, B string
	// I and J index A and B in the input slice.
	I, J int
}

// SpacingIssue is a pair of placements closer than the required spacing.
type SpacingIssue struct {
	A, B     string
	I, J     int
	Distance float64
}

// PlacementRect returns the panel-local rectangle of a placement.
// It reports false when the placement's catalog entry cannot be resolved.
func PlacementRect(p design.CanvasComponent, catalog *design.Catalog) (Rect, bool) {
	w, h, ok := catalog.Footprint(p.ComponentID)
	if !ok {
		return Rect{}, false
	}
	return Rect{X: p.Position.X, Y: p.Position.Y, Width: w, Height: h}, true
}

// PanelBounds returns the panel-local bounds of a panel.
func PanelBounds(p design.Panel) Rect {
	return Rect{Width: p.Width, Height: p.Height}
}

type resolved struct {
	p    design.CanvasComponent
	i    int
	rect Rect
}

func resolve(placements []design.CanvasComponent, catalog *design.Catalog) []resolved {
	out := make([]resolved, 0, len(placements))
	for i, p := range placements {
		if r, ok := PlacementRect(p, catalog); ok {
			out = append(out, resolved{p: p, i: i, rect: r})
		}
	}
	return out
}

// CheckOverlaps returns every pair of placements on the same panel whose
// rectangles overlap. Pairs are reported once, in input order.
func CheckOverlaps(placements []design.CanvasComponent, catalog *design.Catalog) []Pair {
	items := resolve(placements, catalog)
	var out []Pair
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.p.PanelID != b.p.PanelID {
				continue
			}
			if RectanglesOverlap(a.rect, b.rect) {
				out = append(out, Pair{A: a.p.ID, B: b.p.ID, I: a.i, J: b.i})
			}
		}
	}
	return out
}

// CheckSpacing returns every pair of non-overlapping placements on the same
// panel whose [MinEdgeDistance] is below minSpacing.
func CheckSpacing(placements []design.CanvasComponent, catalog *design.Catalog, minSpacing float64) []SpacingIssue {
	items := resolve(placements, catalog)
	var out []SpacingIssue
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.p.PanelID != b.p.PanelID || RectanglesOverlap(a.rect, b.rect) {
				continue
			}
			if d := MinEdgeDistance(a.rect, b.rect); d < minSpacing {
				out = append(out, SpacingIssue{A: a.p.ID, B: b.p.ID, I: a.i, J: b.i, Distance: d})
			}
		}
	}
	return out
}

// OutOfBoundsComponents returns the ids of placements that are not inside
// their panel. A placement whose panel does not exist is out of bounds; a
// placement whose catalog entry is missing is skipped.
func OutOfBoundsComponents(placements []design.CanvasComponent, catalog *design.Catalog, panels []design.Panel) []string {
	var out []string
	for _, p := range placements {
		panel, ok := design.FindPanel(panels, p.PanelID)
		if !ok {
			out = append(out, p.ID)
			continue
		}
		r, ok := PlacementRect(p, catalog)
		if !ok {
			continue
		}
		if !IsWithinBounds(r, PanelBounds(panel)) {
			out = append(out, p.ID)
		}
	}
	return out
}

// PanelOffsets returns each panel's global X offset: the sum of the widths
// of the panels before it.
func PanelOffsets(panels []design.Panel) map[string]float64 {
	offsets := make(map[string]float64, len(panels))
	var x float64
	for _, p := range panels {
		offsets[p.ID] = x
		x += p.Width
	}
	return offsets
}

// GlobalRect returns a placement's rectangle in the shared coordinate space
// where panels sit side by side along X.
func GlobalRect(p design.CanvasComponent, catalog *design.Catalog, offsets map[string]float64) (Rect, bool) {
	off, ok := offsets[p.PanelID]
	if !ok {
		return Rect{}, false
	}
	r, ok := PlacementRect(p, catalog)
	if !ok {
		return Rect{}, false
	}
	return r.Translate(off, 0), true
}

// IntersectsPanelBounds returns the ids of placements that reach into one of
// the target panels while belonging to a different panel. Each offending
// placement is reported once.
func IntersectsPanelBounds(placements []design.CanvasComponent, catalog *design.Catalog, panels []design.Panel, targetPanelIDs []string) []string {
	offsets := PanelOffsets(panels)

	targets := make(map[string]Rect, len(targetPanelIDs))
	for _, id := range targetPanelIDs {
		panel, ok := design.FindPanel(panels, id)
		if !ok {
			continue
		}
		targets[id] = PanelBounds(panel).Translate(offsets[id], 0)
	}

	var out []string
	for _, p := range placements {
		r, ok := GlobalRect(p, catalog, offsets)
		if !ok {
			continue
		}
		for _, id := range targetPanelIDs {
			bounds, ok := targets[id]
			if !ok || p.PanelID == id {
				continue
			}
			if RectanglesOverlap(r, bounds) {
				out = append(out, p.ID)
				break
			}
		}
	}
	return out
}
