package generate

import "hungry-horace/internal/component"

// Rect is an axis-aligned rectangle used for rooms. Bounds are inclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center tile of the rectangle.
func (r Rect) Center() component.Point {
	return component.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}
