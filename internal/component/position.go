package component

import (
	"fmt"
	"math"
)

// Point is an integer tile coordinate.
type Point struct {
	X, Y int
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by k on both axes.
func (p Point) Scale(k int) Point { return Point{p.X * k, p.Y * k} }

// Manhattan returns the 4-directional grid distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Origin returns the pixel position of tile p's top-left corner.
func (p Point) Origin(tileSize int) Vec {
	return Vec{float64(p.X * tileSize), float64(p.Y * tileSize)}
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Vec is a continuous position or offset in pixel space.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// Tile returns the tile whose origin is nearest to v.
func (v Vec) Tile(tileSize int) Point {
	ts := float64(tileSize)
	return Point{
		X: int(math.Floor((v.X + ts/2) / ts)),
		Y: int(math.Floor((v.Y + ts/2) / ts)),
	}
}

// Direction is a facing or movement direction.
// The order (left, up, right, down) is the neighbour enumeration order
// used throughout the game.
type Direction uint8

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// Directions lists every direction in enumeration order.
var Directions = [4]Direction{DirLeft, DirUp, DirRight, DirDown}

var directionDeltas = [4]Point{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

var directionNames = [4]string{"left", "up", "right", "down"}

// Delta returns the unit tile offset for d.
func (d Direction) Delta() Point {
	if int(d) >= len(directionDeltas) {
		return Point{}
	}
	return directionDeltas[d]
}

// Unit returns d as a pixel-space unit vector.
func (d Direction) Unit() Vec {
	p := d.Delta()
	return Vec{float64(p.X), float64(p.Y)}
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool { return d == DirLeft || d == DirRight }

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", d)
	}
	return directionNames[d]
}

// MarshalText encodes d by name for save files.
func (d Direction) MarshalText() ([]byte, error) {
	if int(d) >= len(directionNames) {
		return nil, fmt.Errorf("invalid direction %d", d)
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if string(b) == name {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
