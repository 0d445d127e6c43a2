package render

import "hungry-horace/internal/component"

// Camera translates between tile coordinates and screen coordinates.
// Tile X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera looking at the top-left corner of the map.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Resize changes the viewport size.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}

// Follow centers the camera on p, clamped so a map that fits the viewport
// stays still and a larger one never scrolls past its edges.
func (c *Camera) Follow(p component.Point, mapW, mapH int) {
	tilesX := c.ViewWidth / 2
	c.OffsetX = clampOffset(p.X-tilesX/2, mapW, tilesX)
	c.OffsetY = clampOffset(p.Y-c.ViewHeight/2, mapH, c.ViewHeight)
}

func clampOffset(off, mapLen, view int) int {
	if mapLen <= view {
		return 0
	}
	return max(0, min(off, mapLen-view))
}

// WorldToScreen converts tile p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p component.Point) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * 2
	sy = p.Y - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
