package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func pt(x, y int) component.Point { return component.Point{X: x, Y: y} }

func vec(x, y float64) component.Vec { return component.Vec{X: x, Y: y} }

// openMap creates a w×h map with no walls.
func openMap(w, h int) *gamemap.GameMap {
	gmap := gamemap.New(w, h)
	for y := range h {
		for x := range w {
			gmap.Set(pt(x, y), gamemap.TileEmpty)
		}
	}
	return gmap
}

// levelMap parses rows of level characters.
func levelMap(t *testing.T, rows ...string) *gamemap.GameMap {
	t.Helper()
	gmap, err := gamemap.Parse(strings.NewReader(strings.Join(rows, "\n")), len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return gmap
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tiles builds a path from tile coordinates.
func tiles(ps ...component.Point) []gamemap.Tile {
	out := make([]gamemap.Tile, len(ps))
	for i, p := range ps {
		out[i] = gamemap.Tile{Kind: gamemap.TileEmpty, Pos: p}
	}
	return out
}
