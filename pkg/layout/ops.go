package layout

import (
	"sort"

	"github.com/google/uuid"

	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/engine"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// NextPosition returns where a new item would land if appended to the panel,
// and the order it would get. The item goes below the last stacked item,
// separated by Spacing unless both are combinators. On an empty panel it
// starts below the top gap.
func NextPosition(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel, componentID string) (design.Position, int) {
	w, _, _ := catalog.Footprint(componentID)
	pos := design.Position{X: (panel.Width - w) / 2}

	g := GapSizes(panel, rs, library)
	items := stacked(panel.ID, placements, catalog)
	if len(items) == 0 {
		order := 0
		if g.HasTop {
			pos.Y = g.Top
			order = 1
		}
		return pos, order
	}

	last := items[len(items)-1]
	lp := placements[last.idx]
	pos.Y = lp.Position.Y + last.height + gapBefore(last.combinator, catalog.IsCombinator(componentID))
	return pos, lp.Properties.Order + 1
}

// Add places a catalog item at the bottom of the panel's stack. The panel's
// gap placements are reconciled with rs first, so the item never lands in a
// reserved band. It is rejected when the item does not fit or when a component it requires is
// absent; the input is never modified. An empty id is replaced with a random
// one.
func Add(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, rs []rules.Rule, library []design.Panel, componentID, id string) ([]design.CanvasComponent, error) {
	_, h, ok := catalog.Footprint(componentID)
	if !ok {
		return nil, errors.New(errors.ErrCodeComponentNotFound, "component %q is not in the catalog", componentID)
	}
	if id == "" {
		id = uuid.NewString()
	} else if err := errors.ValidateID("placement", id); err != nil {
		return nil, err
	}
	for _, p := range placements {
		if p.ID == id {
			return nil, errors.New(errors.ErrCodeInvalidInput, "placement %q already exists", id)
		}
	}

	if err := CheckCapacity(panel, placements, catalog, rs, library, h); err != nil {
		return nil, err
	}
	if err := engine.CheckRequiredComponents(componentID, panel.ID, placements, catalog, rs); err != nil {
		return nil, err
	}

	pos, order := NextPosition(panel, placements, catalog, rs, library, componentID)
	out := append(design.Clone(placements), design.CanvasComponent{
		ID:          id,
		ComponentID: componentID,
		PanelID:     panel.ID,
		Position:    pos,
		Scale:       1,
		Properties:  design.Properties{Order: order},
	})
	return applyPanelGaps(panel, out, catalog, rs, library), nil
}

// Reorder moves a placement so that its vertical center lands at centerY,
// then restacks the panel. The other items keep their relative order.
func Reorder(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, id string, centerY float64) ([]design.CanvasComponent, error) {
	idx := indexOf(placements, id)
	if idx < 0 || placements[idx].PanelID != panel.ID {
		return nil, errors.New(errors.ErrCodePlacementNotFound, "placement %q not found on panel %s", id, panel.ID)
	}
	if placements[idx].IsGap() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "gap placement %q cannot be moved", id)
	}

	out := design.Clone(placements)
	var others []item
	var dragged item
	for _, it := range stacked(panel.ID, out, catalog) {
		if it.idx == idx {
			dragged = it
			continue
		}
		others = append(others, it)
	}

	center := func(it item) float64 { return out[it.idx].Position.Y + it.height/2 }
	sort.SliceStable(others, func(a, b int) bool { return center(others[a]) < center(others[b]) })
	at := sort.Search(len(others), func(i int) bool { return center(others[i]) >= centerY })

	items := make([]item, 0, len(others)+1)
	items = append(items, others[:at]...)
	items = append(items, dragged)
	items = append(items, others[at:]...)
	return arrange(panel, out, items), nil
}

// Remove deletes a placement and restacks its panel so orders stay
// contiguous.
func Remove(panel design.Panel, placements []design.CanvasComponent, catalog *design.Catalog, id string) ([]design.CanvasComponent, error) {
	idx := indexOf(placements, id)
	if idx < 0 || placements[idx].PanelID != panel.ID {
		return nil, errors.New(errors.ErrCodePlacementNotFound, "placement %q not found on panel %s", id, panel.ID)
	}
	out := make([]design.CanvasComponent, 0, len(placements)-1)
	out = append(out, design.Clone(placements[:idx])...)
	out = append(out, design.Clone(placements[idx+1:])...)
	return restack(panel, out, catalog), nil
}

func indexOf(placements []design.CanvasComponent, id string) int {
	for i := range placements {
		if placements[i].ID == id {
			return i
		}
	}
	return -1
}
