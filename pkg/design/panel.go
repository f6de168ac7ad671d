package design

import (
	"strconv"
)

// Panel is a rectangular mounting surface. Dimensions are millimeters.
type Panel struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Depth      float64 `json:"depth"`
	Background string  `json:"svg2dImage,omitempty"`
}

// SizeKey returns the panel size label used by size-mapping rules,
// formatted as "<width>x<height>" (e.g. "600x800").
func (p Panel) SizeKey() string {
	return formatMM(p.Width) + "x" + formatMM(p.Height)
}

// MatchesSize reports whether a size label from a rule refers to this panel.
// Both the full "<width>x<height>" label and the bare width are accepted.
func (p Panel) MatchesSize(size string) bool {
	if size == "" {
		return false
	}
	return size == p.SizeKey() || size == formatMM(p.Width)
}

// FindPanel returns the panel with the given id.
func FindPanel(panels []Panel, id string) (Panel, bool) {
	for _, p := range panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// TotalWidth returns the width of all panels laid side by side.
func TotalWidth(panels []Panel) float64 {
	var w float64
	for _, p := range panels {
		w += p.Width
	}
	return w
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
