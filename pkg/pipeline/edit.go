package pipeline

import (
	"github.com/matzehuels/cabinetry/pkg/design"
	"github.com/matzehuels/cabinetry/pkg/engine"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/layout"
	"github.com/matzehuels/cabinetry/pkg/rules"
)

// =============================================================================
// Layout Edits
// =============================================================================

// ApplyGaps returns a copy of d with gaps applied and every panel restacked.
func ApplyGaps(d *design.Design, rs []rules.Rule) *design.Design {
	return with(d, layout.ApplyGaps(d.Panels, d.Placements, d.Catalog, rs, d.Library))
}

// AddComponent places a catalog item at the bottom of a panel. Rejections
// (insufficient height, missing required components) are returned as coded
// errors and d is left unchanged.
func AddComponent(d *design.Design, rs []rules.Rule, panelID, componentID, placementID string) (*design.Design, error) {
	panel, err := findPanel(d, panelID)
	if err != nil {
		return nil, err
	}
	placements, err := layout.Add(panel, d.Placements, d.Catalog, rs, d.Library, componentID, placementID)
	if err != nil {
		return nil, err
	}
	return with(d, placements), nil
}

// MovePlacement moves a placement so its vertical center lands at centerY.
func MovePlacement(d *design.Design, panelID, placementID string, centerY float64) (*design.Design, error) {
	panel, err := findPanel(d, panelID)
	if err != nil {
		return nil, err
	}
	placements, err := layout.Reorder(panel, d.Placements, d.Catalog, placementID, centerY)
	if err != nil {
		return nil, err
	}
	return with(d, placements), nil
}

// RemovePlacement deletes a placement and restacks its panel.
func RemovePlacement(d *design.Design, panelID, placementID string) (*design.Design, error) {
	panel, err := findPanel(d, panelID)
	if err != nil {
		return nil, err
	}
	placements, err := layout.Remove(panel, d.Placements, d.Catalog, placementID)
	if err != nil {
		return nil, err
	}
	return with(d, placements), nil
}

// Capacity describes the stacking height of one panel.
type Capacity struct {
	PanelID   string  `json:"panelId"`
	Max       float64 `json:"max"`
	Used      float64 `json:"used"`
	Available float64 `json:"available"`
}

// PanelCapacity reports the stacking height of a panel.
func PanelCapacity(d *design.Design, rs []rules.Rule, panelID string) (Capacity, error) {
	panel, err := findPanel(d, panelID)
	if err != nil {
		return Capacity{}, err
	}
	maxH := layout.MaxHeight(panel, rs, d.Library)
	used := layout.UsedHeight(panel, d.Placements, d.Catalog)
	return Capacity{PanelID: panel.ID, Max: maxH, Used: used, Available: maxH - used}, nil
}

// =============================================================================
// Selection
// =============================================================================

// Allowed lists what may be offered for placement on one panel.
type Allowed struct {
	PanelID string `json:"panelId"`

	// Types is nil when no mapping restricts component types.
	Types      []string `json:"types,omitempty"`
	Restricted bool     `json:"restricted"`

	Components  []design.Component  `json:"components"`
	Combinators []design.Combinator `json:"combinators"`
}

// AllowedFor applies the selection filters of rs to d's catalog for a panel.
func AllowedFor(d *design.Design, rs []rules.Rule, panelID string) (*Allowed, error) {
	panel, err := findPanel(d, panelID)
	if err != nil {
		return nil, err
	}
	var components []design.Component
	var combinators []design.Combinator
	if d.Catalog != nil {
		components, combinators = d.Catalog.Components, d.Catalog.Combinators
	}
	types, restricted := engine.AllowedComponentTypes(panel, rs)
	a := &Allowed{
		PanelID:     panel.ID,
		Types:       types,
		Restricted:  restricted,
		Components:  engine.FilterComponents(panel, rs, components),
		Combinators: engine.AllowedCombinators(panel, rs, combinators),
	}
	if a.Components == nil {
		a.Components = []design.Component{}
	}
	if a.Combinators == nil {
		a.Combinators = []design.Combinator{}
	}
	return a, nil
}

func findPanel(d *design.Design, id string) (design.Panel, error) {
	if d == nil {
		return design.Panel{}, errors.New(errors.ErrCodeInvalidInput, "design is required")
	}
	panel, ok := d.Panel(id)
	if !ok {
		return design.Panel{}, errors.New(errors.ErrCodePanelNotFound, "panel %q not found", id)
	}
	return panel, nil
}

// with returns a shallow copy of d holding placements.
func with(d *design.Design, placements []design.CanvasComponent) *design.Design {
	out := *d
	out.Placements = placements
	return &out
}
