package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"hungry-horace/internal/pathfind"
)

// Tuning holds the tile distances used by the targeting strategies.
type Tuning struct {
	FlankDistance   int // how far ahead of the player the flanker aims
	RetreatDistance int // ambusher falls back at or below this distance
	PursueDistance  int // ambusher gives chase beyond this distance
}

// Quarry is what an enemy knows about the player when it picks a target.
type Quarry struct {
	Tile   component.Point
	Facing component.Direction
	Home   component.Point // player spawn; the ambusher's retreat point
}

// Target picks the tile e should head for this tick according to its
// strategy. Flank and ambush enemies update their memory fields.
func Target(g pathfind.Grid, e *component.Enemy, self component.Point, q Quarry, t Tuning) component.Point {
	switch e.Strategy {
	case component.StrategyFlank:
		return FlankTarget(g, e, self, q, t.FlankDistance)
	case component.StrategyAmbush:
		return AmbushTarget(e, self, q, t)
	default:
		return DirectTarget(q)
	}
}

// DirectTarget chases the player's tile.
func DirectTarget(q Quarry) component.Point { return q.Tile }

// FlankTarget aims distance tiles ahead of the player (FlankSign +1) or behind
// it (-1). A target off the map or inside a wall is pulled back toward the
// player one tile at a time. Once the enemy stands on its target the sign
// flips, so the flanker keeps circling instead of parking.
func FlankTarget(g pathfind.Grid, e *component.Enemy, self component.Point, q Quarry, distance int) component.Point {
	if e.FlankSign == 0 {
		e.FlankSign = 1
	}
	step := q.Facing.Delta().Scale(e.FlankSign)
	target := q.Tile.Add(step.Scale(distance))
	for target != q.Tile && (!g.InBounds(target) || g.Kind(target) == gamemap.TileWall) {
		target = target.Sub(step)
	}
	if target == self {
		e.FlankSign = -e.FlankSign
	}
	return target
}

// AmbushTarget pursues the player from afar and retreats home once close.
// Between the two distances the previous target is kept so the enemy does
// not dither on the boundary.
func AmbushTarget(e *component.Enemy, self component.Point, q Quarry, t Tuning) component.Point {
	d := self.Manhattan(q.Tile)
	switch {
	case d <= t.RetreatDistance:
		e.AmbushTarget = q.Home
	case d > t.PursueDistance:
		e.AmbushTarget = q.Tile
	}
	return e.AmbushTarget
}
