package pathfind

import (
	"strings"
	"testing"

	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
)

func pt(x, y int) component.Point { return component.Point{X: x, Y: y} }

// mustParse builds a map from rows of level characters.
func mustParse(t *testing.T, rows ...string) *gamemap.GameMap {
	t.Helper()
	m, err := gamemap.Parse(strings.NewReader(strings.Join(rows, "\n")), len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return m
}

var fixtures = map[string][]string{
	"open room": {
		"000000",
		"000000",
		"000000",
		"000000",
	},
	"maze": {
		"XXXXXXXXX",
		"X0F0X0F0X",
		"X0X0X0X0X",
		"X0X000X0X",
		"X0XXXXX0X",
		"X0000B00X",
		"XXXXXXXXX",
	},
	"rooms": {
		"0000X0000",
		"0XX0X0XX0",
		"0X000000X",
		"0XXXX0X00",
		"000000X0E",
	},
	"detour": {
		"0000000",
		"0XXXXX0",
		"0X000X0",
		"0X0X0X0",
		"000X000",
	},
}

// bfs returns shortest distances from start to every reachable tile.
func bfs(m *gamemap.GameMap, start component.Point) map[component.Point]int {
	dist := map[component.Point]int{start: 0}
	queue := []component.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range component.Directions {
			next := cur.Add(d.Delta())
			if !m.Walkable(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

func openTiles(m *gamemap.GameMap) []component.Point {
	var out []component.Point
	for y := range m.Height {
		for x := range m.Width {
			if m.Walkable(pt(x, y)) {
				out = append(out, pt(x, y))
			}
		}
	}
	return out
}

// TestFindPathAllPairs checks every reachable pair of every fixture:
// correct endpoints, orthogonal steps, no walls and BFS-optimal length.
func TestFindPathAllPairs(t *testing.T) {
	for name, rows := range fixtures {
		t.Run(name, func(t *testing.T) {
			m := mustParse(t, rows...)
			tiles := openTiles(m)
			for _, start := range tiles {
				want := bfs(m, start)
				for _, target := range tiles {
					shortest, reachable := want[target]
					path := FindPath(m, start, target)
					if !reachable {
						if path != nil {
							t.Errorf("%v->%v: expected no path, got %d tiles", start, target, len(path))
						}
						continue
					}
					if path == nil {
						t.Fatalf("%v->%v: no path on connected tiles", start, target)
					}
					if path[0].Pos != start || path[len(path)-1].Pos != target {
						t.Fatalf("%v->%v: path runs %v..%v", start, target, path[0].Pos, path[len(path)-1].Pos)
					}
					if got := len(path) - 1; got != shortest {
						t.Errorf("%v->%v: length %d, BFS shortest %d", start, target, got, shortest)
					}
					for i, tile := range path {
						if tile.Kind == gamemap.TileWall {
							t.Errorf("%v->%v: wall at step %d", start, target, i)
						}
						if i > 0 && tile.Pos.Manhattan(path[i-1].Pos) != 1 {
							t.Errorf("%v->%v: step %d jumps %v->%v", start, target, i, path[i-1].Pos, tile.Pos)
						}
					}
				}
			}
		})
	}
}

func TestFindPathSameTile(t *testing.T) {
	m := mustParse(t, fixtures["maze"]...)
	path := FindPath(m, pt(1, 1), pt(1, 1))
	if len(path) != 1 || path[0].Pos != pt(1, 1) {
		t.Fatalf("FindPath(t,t) = %v, want single tile", path)
	}
}

func TestFindPathCarriesTileKinds(t *testing.T) {
	m := mustParse(t, fixtures["maze"]...)
	path := FindPath(m, pt(1, 1), pt(3, 1))
	if path == nil {
		t.Fatal("expected a path")
	}
	var sawFood bool
	for _, tile := range path {
		if tile.Pos == pt(2, 1) {
			sawFood = tile.Kind == gamemap.TileNormalFood
		}
	}
	if !sawFood {
		t.Errorf("path should pass (2,1) reporting it as food: %v", path)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	m := mustParse(t,
		"00X00",
		"00X00",
		"00X00",
	)
	if path := FindPath(m, pt(0, 0), pt(4, 2)); path != nil {
		t.Errorf("walled-off target should yield nil, got %v", path)
	}
}

func TestFindPathOutOfBounds(t *testing.T) {
	m := mustParse(t, fixtures["open room"]...)
	cases := []struct {
		name          string
		start, target component.Point
	}{
		{"target off map", pt(0, 0), pt(6, 0)},
		{"start off map", pt(-1, 0), pt(2, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if path := FindPath(m, tc.start, tc.target); path != nil {
				t.Errorf("expected nil, got %v", path)
			}
		})
	}
}

func TestFindPathDeterministic(t *testing.T) {
	m := mustParse(t, fixtures["open room"]...)
	first := FindPath(m, pt(0, 0), pt(5, 3))
	for range 5 {
		again := FindPath(m, pt(0, 0), pt(5, 3))
		if len(again) != len(first) {
			t.Fatalf("path length changed between runs")
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("path differs at step %d: %v vs %v", i, first[i].Pos, again[i].Pos)
			}
		}
	}
}

func BenchmarkFindPathMaze(b *testing.B) {
	rows := fixtures["maze"]
	m, err := gamemap.Parse(strings.NewReader(strings.Join(rows, "\n")), len(rows[0]), len(rows))
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		FindPath(m, pt(1, 1), pt(7, 1))
	}
}
