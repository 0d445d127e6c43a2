package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"hungry-horace/internal/pathfind"
	"log/slog"
)

// ChaseOutcome describes what one chase tick did.
type ChaseOutcome uint8

const (
	ChaseIdle   ChaseOutcome = iota // inactive, no path, or already on target
	ChaseMoved                      // advanced along its path
	ChaseCaught                     // a hunting enemy reached the player
	ChaseEaten                      // the player ate a hunted enemy; it was sent home
)

var chaseOutcomeNames = [...]string{"idle", "moved", "caught", "eaten"}

func (o ChaseOutcome) String() string {
	if int(o) < len(chaseOutcomeNames) {
		return chaseOutcomeNames[o]
	}
	return "unknown"
}

// ChaseEnv is the shared state an enemy reads during one tick. Player is a
// copy taken by the caller; ChaseStep never writes to it or to the grid.
type ChaseEnv struct {
	Grid     *gamemap.GameMap
	TileSize int
	Player   component.Actor
	Home     component.Point
	Tuning   Tuning
}

// ChaseStep runs one tick of e's chase: capture check first, then targeting,
// path search and motion. Caught and eaten outcomes are for the caller to
// score; ChaseStep only resets an eaten enemy to the home tile.
func ChaseStep(e *component.Enemy, env ChaseEnv, logger *slog.Logger) ChaseOutcome {
	if !e.Active {
		return ChaseIdle
	}
	playerTile := env.Player.Tile(env.TileSize)
	if !env.Grid.InBounds(playerTile) {
		// Player has left through the exit; the level is ending.
		return ChaseIdle
	}

	if e.Pos.Dist(env.Player.Pos) < float64(env.TileSize) {
		if e.State == component.Hunting {
			return ChaseCaught
		}
		e.Pos = env.Home.Origin(env.TileSize)
		e.State = component.Hunting
		return ChaseEaten
	}

	self := e.Tile(env.TileSize)
	target := Target(env.Grid, e, self, Quarry{
		Tile:   playerTile,
		Facing: env.Player.Facing,
		Home:   env.Home,
	}, env.Tuning)

	path := pathfind.FindPath(env.Grid, self, target)
	if path == nil {
		logger.Warn("no path to target",
			"strategy", e.Strategy.String(),
			"from", self.String(),
			"to", target.String())
		return ChaseIdle
	}
	next := Advance(e.Pos, path, e.Speed, env.TileSize)
	if next == e.Pos {
		return ChaseIdle
	}
	e.Facing = heading(e.Pos, next, e.Facing)
	e.Pos = next
	return ChaseMoved
}

// DropSpecialFood lets the direct chaser leave one special food on its tile
// once the level score passes threshold. The gift only lands on an empty or
// food tile; otherwise it is retried on a later tick.
func DropSpecialFood(m *gamemap.GameMap, e *component.Enemy, levelScore, threshold, tileSize int) bool {
	if e.Strategy != component.StrategyDirect || e.DroppedFood || !e.Active || levelScore <= threshold {
		return false
	}
	p := e.Tile(tileSize)
	if !m.InBounds(p) {
		return false
	}
	if m.Swap(p, gamemap.TileEmpty, gamemap.TileSpecialFood) || m.Swap(p, gamemap.TileNormalFood, gamemap.TileSpecialFood) {
		e.DroppedFood = true
		return true
	}
	return false
}
