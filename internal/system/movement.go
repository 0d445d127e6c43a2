package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"math"
)

// MoveResult describes the outcome of a MovePlayer call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, entrance or map edge; snapped to the tile edge
)

func (r MoveResult) String() string {
	if r == MoveOK {
		return "ok"
	}
	return "blocked"
}

// MovePlayer moves the player speed pixels in dir. The player's sprite
// covers a whole tile, so every corner must land on a tile the player may
// enter. A blocked move leaves the player flush against the obstacle.
//
// A turn into a side corridor is assisted: when the move is blocked but the
// player is within one step of being aligned with the corridor, the player
// is lined up first and the move retried.
func MovePlayer(m *gamemap.GameMap, a *component.Actor, dir component.Direction, tileSize int) MoveResult {
	a.Facing = dir
	if tryStep(m, a, dir, tileSize) {
		return MoveOK
	}
	aligned := a.Pos
	if dir.Horizontal() {
		aligned.Y = nearestEdge(a.Pos.Y, tileSize)
	} else {
		aligned.X = nearestEdge(a.Pos.X, tileSize)
	}
	if aligned != a.Pos && aligned.Dist(a.Pos) <= float64(a.Speed) && !blocked(m, aligned, tileSize) {
		saved := a.Pos
		a.Pos = aligned
		if tryStep(m, a, dir, tileSize) {
			return MoveOK
		}
		a.Pos = saved
	}
	snapToEdge(a, dir, tileSize)
	return MoveBlocked
}

// tryStep moves a by its speed in dir unless that would enter a blocked tile.
func tryStep(m *gamemap.GameMap, a *component.Actor, dir component.Direction, tileSize int) bool {
	next := a.Pos.Add(dir.Unit().Scale(float64(a.Speed)))
	if blocked(m, next, tileSize) {
		return false
	}
	a.Pos = next
	return true
}

// snapToEdge pushes the actor against the tile boundary it bumped into.
func snapToEdge(a *component.Actor, dir component.Direction, tileSize int) {
	ts := float64(tileSize)
	switch dir {
	case component.DirLeft:
		a.Pos.X = math.Floor(a.Pos.X/ts) * ts
	case component.DirUp:
		a.Pos.Y = math.Floor(a.Pos.Y/ts) * ts
	case component.DirRight:
		a.Pos.X = math.Ceil(a.Pos.X/ts) * ts
	case component.DirDown:
		a.Pos.Y = math.Ceil(a.Pos.Y/ts) * ts
	}
}

func nearestEdge(v float64, tileSize int) float64 {
	ts := float64(tileSize)
	return math.Round(v/ts) * ts
}

// corners returns the tiles under the four corners of a tile-sized sprite
// at pos: top-left, top-right, bottom-right, bottom-left.
func corners(pos component.Vec, tileSize int) [4]component.Point {
	ts := float64(tileSize)
	edge := ts - 1
	at := func(x, y float64) component.Point {
		return component.Point{X: int(math.Floor(x / ts)), Y: int(math.Floor(y / ts))}
	}
	return [4]component.Point{
		at(pos.X, pos.Y),
		at(pos.X+edge, pos.Y),
		at(pos.X+edge, pos.Y+edge),
		at(pos.X, pos.Y+edge),
	}
}

// blocked reports whether a sprite at pos overlaps a tile the player cannot
// enter. Off-map tiles count as blocked.
func blocked(m *gamemap.GameMap, pos component.Vec, tileSize int) bool {
	for _, p := range corners(pos, tileSize) {
		if !m.InBounds(p) {
			return true
		}
		if k := m.Kind(p); k == gamemap.TileWall || k == gamemap.TileEntrance {
			return true
		}
	}
	return false
}

// Occupies returns the first tile of kind k under the sprite at pos.
func Occupies(m *gamemap.GameMap, pos component.Vec, tileSize int, k gamemap.TileKind) (component.Point, bool) {
	for _, p := range corners(pos, tileSize) {
		if m.InBounds(p) && m.Kind(p) == k {
			return p, true
		}
	}
	return component.Point{}, false
}

// Consume empties one tile of kind k under the sprite at pos and reports
// whether it did. Racing consumers see exactly one success per tile.
func Consume(m *gamemap.GameMap, pos component.Vec, tileSize int, k gamemap.TileKind) bool {
	for _, p := range corners(pos, tileSize) {
		if m.InBounds(p) && m.Swap(p, k, gamemap.TileEmpty) {
			return true
		}
	}
	return false
}
