package geometry

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Translate returns r shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// RectanglesOverlap reports whether a and b share interior area.
// Edges that merely touch do not count as overlap.
func RectanglesOverlap(a, b Rect) bool {
	return a.X < b.Right() && a.Right() > b.X &&
		a.Y < b.Bottom() && a.Bottom() > b.Y
}

// IsWithinBounds reports whether all four edges of r lie inside bounds,
// edges inclusive.
func IsWithinBounds(r, bounds Rect) bool {
	return r.X >= bounds.X && r.Y >= bounds.Y &&
		r.Right() <= bounds.Right() && r.Bottom() <= bounds.Bottom()
}

// MinEdgeDistance approximates the gap between a and b.
//
// It is the center-to-center Euclidean distance minus each rectangle's mean
// half-extent ((width+height)/4), clamped at zero. This is not the true
// polygon distance: for elongated rectangles it is lenient along the long
// axis and strict along the short one. Existing rule sets are tuned against
// this formula, so it must stay as is.
func MinEdgeDistance(a, b Rect) float64 {
	dx := a.CenterX() - b.CenterX()
	dy := a.CenterY() - b.CenterY()
	center := math.Sqrt(dx*dx + dy*dy)
	d := center - (a.Width+a.Height)/4 - (b.Width+b.Height)/4
	return math.Max(0, d)
}
