package component

// Actor is anything that moves through the maze in pixel space.
// Pos is the authoritative location; the tile is derived from it.
type Actor struct {
	Pos    Vec
	Facing Direction
	Speed  int // pixels per tick
}

// Tile returns the tile the actor is nearest to.
func (a Actor) Tile(tileSize int) Point { return a.Pos.Tile(tileSize) }
