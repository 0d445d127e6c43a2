package gamemap

import (
	"fmt"
	"sync"

	"hungry-horace/internal/component"
)

// GameMap holds the tile grid for one level. The shape is fixed at
// construction; tile content may change while the level is played and is
// safe for concurrent use.
type GameMap struct {
	Width, Height int

	mu    sync.RWMutex
	kinds []TileKind // row-major
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gamemap: invalid size %dx%d", width, height))
	}
	kinds := make([]TileKind, width*height)
	for i := range kinds {
		kinds[i] = TileWall
	}
	return &GameMap{Width: width, Height: height, kinds: kinds}
}

// InBounds reports whether p is within the map boundaries.
func (m *GameMap) InBounds(p component.Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// index panics when p is outside the map. Callers check InBounds first.
func (m *GameMap) index(p component.Point) int {
	if !m.InBounds(p) {
		panic(fmt.Sprintf("gamemap: %v out of bounds for %dx%d map", p, m.Width, m.Height))
	}
	return p.Y*m.Width + p.X
}

// At returns the tile at p. Panics if out of bounds.
func (m *GameMap) At(p component.Point) Tile {
	return Tile{Kind: m.Kind(p), Pos: p}
}

// Kind returns the kind of the tile at p. Panics if out of bounds.
func (m *GameMap) Kind(p component.Point) TileKind {
	i := m.index(p)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.kinds[i]
}

// Set replaces the tile at p. Panics if out of bounds.
func (m *GameMap) Set(p component.Point, k TileKind) {
	i := m.index(p)
	m.mu.Lock()
	m.kinds[i] = k
	m.mu.Unlock()
}

// Swap changes the tile at p from old to repl and reports whether it did.
// Two actors racing for the same food tile see exactly one success.
func (m *GameMap) Swap(p component.Point, old, repl TileKind) bool {
	i := m.index(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.kinds[i] != old {
		return false
	}
	m.kinds[i] = repl
	return true
}

// Walkable returns true when p is in bounds and not a wall.
func (m *GameMap) Walkable(p component.Point) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Kind(p) != TileWall
}

// Find returns the first tile of kind k in row-major order.
func (m *GameMap) Find(k TileKind) (component.Point, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, kind := range m.kinds {
		if kind == k {
			return component.Point{X: i % m.Width, Y: i / m.Width}, true
		}
	}
	return component.Point{}, false
}

// Count returns how many tiles hold kind k.
func (m *GameMap) Count(k TileKind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, kind := range m.kinds {
		if kind == k {
			n++
		}
	}
	return n
}

// Kinds returns a row-major copy of every tile kind.
func (m *GameMap) Kinds() []TileKind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TileKind, len(m.kinds))
	copy(out, m.kinds)
	return out
}

// Rows returns the map in level-file form, one string per row.
func (m *GameMap) Rows() []string {
	kinds := m.Kinds()
	rows := make([]string, m.Height)
	buf := make([]byte, m.Width)
	for y := range m.Height {
		for x := range m.Width {
			buf[x] = kinds[y*m.Width+x].Char()
		}
		rows[y] = string(buf)
	}
	return rows
}

// Clone returns an independent copy of the map.
func (m *GameMap) Clone() *GameMap {
	return &GameMap{Width: m.Width, Height: m.Height, kinds: m.Kinds()}
}
