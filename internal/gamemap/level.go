package gamemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"hungry-horace/internal/component"
)

var (
	ErrBadTile    = errors.New("unknown tile character")
	ErrShortLevel = errors.New("level data ends early")
	ErrNoEntrance = errors.New("level has no usable entrance")
	ErrNoExit     = errors.New("level has no exit")
)

// Parse reads a level of the given size: one character per tile, row-major.
// Line breaks and blanks between characters are ignored, so rows may be
// laid out one per line.
func Parse(r io.Reader, width, height int) (*GameMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("parse level: invalid size %dx%d", width, height)
	}
	m := New(width, height)
	br := bufio.NewReader(r)
	for y := range height {
		for x := range width {
			c, err := nextTileByte(br)
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse level: %w at row %d col %d", ErrShortLevel, y, x)
			}
			if err != nil {
				return nil, fmt.Errorf("parse level: %w", err)
			}
			k, ok := KindFromChar(c)
			if !ok {
				return nil, fmt.Errorf("parse level: %w %q at row %d col %d", ErrBadTile, c, y, x)
			}
			m.kinds[y*width+x] = k
		}
	}
	return m, nil
}

func nextTileByte(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, nil
	}
}

// Encode writes the map in level-file form, one line per row.
func (m *GameMap) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range m.Rows() {
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Spawns are the fixed points of a level.
type Spawns struct {
	Entrance component.Point // the Entrance tile itself
	Home     component.Point // player start; enemies return here when eaten
	Exit     component.Point // enemy start; the player leaves through it
}

// Spawns locates the entrance, exit and home tiles. Home is the first
// neighbour of the entrance (left, up, right, down) that is neither a wall
// nor another entrance.
func (m *GameMap) Spawns() (Spawns, error) {
	entrance, ok := m.Find(TileEntrance)
	if !ok {
		return Spawns{}, ErrNoEntrance
	}
	exit, ok := m.Find(TileExit)
	if !ok {
		return Spawns{}, ErrNoExit
	}
	for _, d := range component.Directions {
		p := entrance.Add(d.Delta())
		if !m.InBounds(p) {
			continue
		}
		if k := m.Kind(p); k != TileWall && k != TileEntrance {
			return Spawns{Entrance: entrance, Home: p, Exit: exit}, nil
		}
	}
	return Spawns{}, fmt.Errorf("%w: entrance at %v is boxed in", ErrNoEntrance, entrance)
}
