package layout

import (
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/geometry"
)

// Slot is the position of one contained component in a combinator's local
// frame.
type Slot struct {
	ComponentID string        `json:"componentId"`
	Rect        geometry.Rect `json:"rect"`
}

// CombinatorSlots lays out a combinator's components: centered horizontally
// and stacked from gaps[0], each one starting gaps[i+1] below the previous
// one's bottom. Components missing from the catalog get no slot and no
// height, but the gap after them still counts, matching
// [design.Catalog.StackHeight]. Missing gaps count as zero.
func CombinatorSlots(cb design.Combinator, catalog *design.Catalog) []Slot {
	gap := func(i int) float64 {
		if i < len(cb.Gaps) {
			return cb.Gaps[i]
		}
		return 0
	}

	slots := make([]Slot, 0, len(cb.ComponentIDs))
	y := gap(0)
	for i, id := range cb.ComponentIDs {
		if comp, ok := catalog.Component(id); ok {
			slots = append(slots, Slot{
				ComponentID: id,
				Rect:        geometry.NewRect((cb.Width-comp.Width)/2, y, comp.Width, comp.Height),
			})
			y += comp.Height
		}
		y += gap(i + 1)
	}
	return slots
}
