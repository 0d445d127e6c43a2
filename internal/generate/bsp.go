// Package generate builds maze levels procedurally: BSP rooms joined by
// corridors, every open tile seeded with food.
package generate

import (
	"errors"
	"fmt"
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"math/rand"
)

// ErrTooSmall is returned when the map cannot hold a playable level.
var ErrTooSmall = errors.New("map too small for a level")

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	BellEvery           int // one bell per this many inner rooms; 0 for none
	Rand                *rand.Rand
}

// DefaultConfig returns settings that suit the terminal-sized levels the
// game ships with.
func DefaultConfig(width, height int, seed int64) *Config {
	return &Config{
		MapWidth:    width,
		MapHeight:   height,
		MinLeafSize: 6,
		MaxLeafSize: 12,
		MinRoomSize: 3,
		RoomPadding: 1,
		BellEvery:   2,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false // already split
	}
	// Decide split direction: horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// createRooms recursively carves food-filled rooms inside terminal leaves.
func (l *bspLeaf) createRooms(b *builder) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(b)
		}
		if l.right != nil {
			l.right.createRooms(b)
		}
		return
	}
	cfg, gmap := b.cfg, b.gmap
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := minSize + cfg.Rand.Intn(max(1, availW-minSize+1))
	rh := minSize + cfg.Rand.Intn(max(1, availH-minSize+1))
	rw = max(min(rw, l.W-2*pad), 3)
	rh = max(min(rh, l.H-2*pad), 3)

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Keep a 1-tile wall border round the map.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			b.open(component.Point{X: x, Y: y})
		}
	}
	b.rooms = append(b.rooms, room)
}

// getRoom returns a room from this leaf or its children.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(b *builder) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(b)
	l.right.connectChildren(b)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	b.carveCorridor(lRoom.Center(), rRoom.Center())
}

// builder carries one generation run.
type builder struct {
	cfg   *Config
	gmap  *gamemap.GameMap
	rooms []Rect
}

// open turns a wall into food; tiles already carved keep their content.
func (b *builder) open(p component.Point) {
	if b.gmap.InBounds(p) {
		b.gmap.Swap(p, gamemap.TileWall, gamemap.TileNormalFood)
	}
}

// Generate builds a complete level: food everywhere the player can walk,
// an entrance in the wall of the first room, the exit in the last room and
// bells spread over the rooms in between.
func Generate(cfg *Config) (*gamemap.GameMap, error) {
	if cfg.MapWidth < 7 || cfg.MapHeight < 7 {
		return nil, fmt.Errorf("generate %dx%d: %w", cfg.MapWidth, cfg.MapHeight, ErrTooSmall)
	}
	b := &builder{cfg: cfg, gmap: gamemap.New(cfg.MapWidth, cfg.MapHeight)}

	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(b)
	root.connectChildren(b)

	if err := b.populate(); err != nil {
		return nil, err
	}
	return b.gmap, nil
}
