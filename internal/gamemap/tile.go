package gamemap

import (
	"fmt"

	"hungry-horace/internal/component"
)

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileWall
	TileNormalFood
	TileSpecialFood
	TileBell
	TileExit
	TileEntrance
)

// tileChars is the on-disk level encoding, one character per tile.
var tileChars = [...]byte{
	TileEmpty:       '0',
	TileWall:        'X',
	TileNormalFood:  'F',
	TileSpecialFood: 'S',
	TileBell:        'B',
	TileExit:        'E',
	TileEntrance:    'e',
}

var tileNames = [...]string{
	TileEmpty:       "empty",
	TileWall:        "wall",
	TileNormalFood:  "food",
	TileSpecialFood: "special-food",
	TileBell:        "bell",
	TileExit:        "exit",
	TileEntrance:    "entrance",
}

// Char returns the level-file character for k.
func (k TileKind) Char() byte {
	if int(k) >= len(tileChars) {
		return '?'
	}
	return tileChars[k]
}

func (k TileKind) String() string {
	if int(k) >= len(tileNames) {
		return fmt.Sprintf("TileKind(%d)", k)
	}
	return tileNames[k]
}

// KindFromChar decodes a level-file character.
func KindFromChar(c byte) (TileKind, bool) {
	for k, ch := range tileChars {
		if ch == c {
			return TileKind(k), true
		}
	}
	return 0, false
}

// Tile is one grid cell: what it holds and where it is.
type Tile struct {
	Kind TileKind
	Pos  component.Point
}

// Walkable reports whether enemies may path through the tile.
func (t Tile) Walkable() bool { return t.Kind != TileWall }
