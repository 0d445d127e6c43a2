package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
)

// Advance moves pos one tick of speed pixels along path and returns the new
// position. The waypoint is the origin of path[1]; an actor that has lagged
// more than a tile behind it heads for path[0] instead. When less than one
// step remains to the waypoint the actor lands on it and spends the rest of
// the step along the following segment, so corners cost no speed. On the
// final waypoint the actor stops.
//
// Paths of fewer than two tiles mean the actor has arrived; pos is returned
// unchanged.
func Advance(pos component.Vec, path []gamemap.Tile, speed, tileSize int) component.Vec {
	if len(path) < 2 || speed <= 0 {
		return pos
	}
	ts := float64(tileSize)
	step := float64(speed)

	next := 1
	waypoint := path[next].Pos.Origin(tileSize)
	dist := waypoint.Dist(pos)
	if dist > ts {
		next = 0
		waypoint = path[next].Pos.Origin(tileSize)
		dist = waypoint.Dist(pos)
	}

	if dist < step {
		if next+1 >= len(path) {
			return waypoint
		}
		dir := path[next+1].Pos.Sub(path[next].Pos)
		unit := component.Vec{X: float64(dir.X), Y: float64(dir.Y)}
		return waypoint.Add(unit.Scale(step - dist))
	}
	return pos.Add(waypoint.Sub(pos).Scale(step / dist))
}

// heading returns the direction that best matches the move from -> to, or
// fallback when the actor did not move.
func heading(from, to component.Vec, fallback component.Direction) component.Direction {
	d := to.Sub(from)
	switch {
	case d.X == 0 && d.Y == 0:
		return fallback
	case abs(d.X) >= abs(d.Y):
		if d.X < 0 {
			return component.DirLeft
		}
		return component.DirRight
	case d.Y < 0:
		return component.DirUp
	default:
		return component.DirDown
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
