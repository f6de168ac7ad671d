package design

import "strings"

// GapComponentID is the reserved ComponentID of gap placements.
const GapComponentID = "gap"

// Stacking ranks that pin gap placements first and last.
const (
	TopGapOrder    = -1
	BottomGapOrder = 9999
)

const (
	topGapPrefix    = "gap-top-"
	bottomGapPrefix = "gap-bottom-"
)

// Position is a panel-local coordinate in millimeters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Properties is the placement property bag.
type Properties struct {
	// Order is the stacking rank within the panel.
	Order int `json:"order"`

	// Classification values for components.
	AValue *string `json:"aValue,omitempty"`
	VValue *string `json:"vValue,omitempty"`
	PValue *string `json:"pValue,omitempty"`

	// GapHeight is set on gap placements only.
	GapHeight *float64 `json:"gapHeight,omitempty"`
}

// CanvasComponent is a placement of a catalog item (or a gap sentinel) on a panel.
type CanvasComponent struct {
	ID          string     `json:"id"`
	ComponentID string     `json:"componentId"`
	PanelID     string     `json:"panelId"`
	Position    Position   `json:"position"`
	Rotation    float64    `json:"rotation"`
	Scale       float64    `json:"scale"`
	Properties  Properties `json:"properties"`
}

// IsGap reports whether the placement is a gap sentinel.
func (c CanvasComponent) IsGap() bool {
	return c.ComponentID == GapComponentID ||
		strings.HasPrefix(c.ID, topGapPrefix) || strings.HasPrefix(c.ID, bottomGapPrefix)
}

// IsTopGap reports whether the placement is the top gap of its panel.
func (c CanvasComponent) IsTopGap() bool {
	return c.ID == TopGapID(c.PanelID)
}

// IsBottomGap reports whether the placement is the bottom gap of its panel.
func (c CanvasComponent) IsBottomGap() bool {
	return c.ID == BottomGapID(c.PanelID)
}

// GapHeight returns the gap band height, or 0 for non-gap placements.
func (c CanvasComponent) GapHeight() float64 {
	if c.Properties.GapHeight == nil {
		return 0
	}
	return *c.Properties.GapHeight
}

// TopGapID returns the id of the top gap placement of a panel.
func TopGapID(panelID string) string { return topGapPrefix + panelID }

// BottomGapID returns the id of the bottom gap placement of a panel.
func BottomGapID(panelID string) string { return bottomGapPrefix + panelID }

// NewGap creates a gap placement. top selects the top or bottom band.
func NewGap(panelID string, top bool, height float64) CanvasComponent {
	g := CanvasComponent{
		ComponentID: GapComponentID,
		PanelID:     panelID,
		Scale:       1,
		Properties:  Properties{GapHeight: &height},
	}
	if top {
		g.ID = TopGapID(panelID)
		g.Properties.Order = TopGapOrder
	} else {
		g.ID = BottomGapID(panelID)
		g.Properties.Order = BottomGapOrder
	}
	return g
}

// OnPanel returns the placements that belong to panelID, in input order.
func OnPanel(placements []CanvasComponent, panelID string) []CanvasComponent {
	var out []CanvasComponent
	for _, p := range placements {
		if p.PanelID == panelID {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of placements, so callers can derive a new
// slice without aliasing pointer-valued properties.
func Clone(placements []CanvasComponent) []CanvasComponent {
	if placements == nil {
		return nil
	}
	out := make([]CanvasComponent, len(placements))
	for i, p := range placements {
		out[i] = p.clone()
	}
	return out
}

func (c CanvasComponent) clone() CanvasComponent {
	c.Properties.AValue = clonePtr(c.Properties.AValue)
	c.Properties.VValue = clonePtr(c.Properties.VValue)
	c.Properties.PValue = clonePtr(c.Properties.PValue)
	c.Properties.GapHeight = clonePtr(c.Properties.GapHeight)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
