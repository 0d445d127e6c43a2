package system

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"testing"
)

var testTuning = Tuning{FlankDistance: 4, RetreatDistance: 8, PursueDistance: 12}

func TestDirectTarget(t *testing.T) {
	gmap := openMap(10, 10)
	e := component.NewEnemy(component.StrategyDirect, vec(0, 0), 2, pt(0, 0))
	q := Quarry{Tile: pt(7, 3), Facing: component.DirDown, Home: pt(1, 1)}
	if got := Target(gmap, &e, pt(0, 0), q, testTuning); got != pt(7, 3) {
		t.Errorf("direct target = %v, want player tile (7,3)", got)
	}
}

func TestAmbushTarget(t *testing.T) {
	home := pt(0, 0)
	self := pt(5, 5)
	earlier := pt(29, 29)
	cases := []struct {
		name     string
		player   component.Point
		previous component.Point
		want     component.Point
	}{
		{"close: retreat home", pt(8, 8), earlier, home},               // d=6
		{"boundary retreat", pt(9, 9), earlier, home},                  // d=8
		{"far: pursue", pt(12, 12), home, pt(12, 12)},                  // d=14
		{"band keeps home", pt(10, 10), home, home},                    // d=10
		{"band keeps old pursuit", pt(10, 10), earlier, earlier},       // d=10
		{"upper boundary still in band", pt(11, 11), earlier, earlier}, // d=12
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := component.NewEnemy(component.StrategyAmbush, self.Origin(12), 2, home)
			e.AmbushTarget = tc.previous
			q := Quarry{Tile: tc.player, Home: home}
			got := Target(openMap(30, 30), &e, self, q, testTuning)
			if got != tc.want {
				t.Errorf("target = %v, want %v", got, tc.want)
			}
			if e.AmbushTarget != got {
				t.Errorf("remembered %v, returned %v", e.AmbushTarget, got)
			}
		})
	}
}

func TestAmbushStartsAtHome(t *testing.T) {
	home := pt(2, 3)
	e := component.NewEnemy(component.StrategyAmbush, vec(0, 0), 2, home)
	q := Quarry{Tile: pt(6, 4), Home: home} // d=10 from (0,0)
	if got := AmbushTarget(&e, pt(0, 0), q, testTuning); got != home {
		t.Errorf("first in-band target = %v, want home %v", got, home)
	}
}

// TestFlankFlipSequence scripts enemy positions over several ticks and
// checks the sign flips exactly when the enemy stands on its target.
func TestFlankFlipSequence(t *testing.T) {
	gmap := openMap(20, 5)
	q := Quarry{Tile: pt(5, 2), Facing: component.DirRight}
	e := component.NewEnemy(component.StrategyFlank, vec(0, 0), 2, pt(0, 0))

	steps := []struct {
		self     component.Point
		want     component.Point
		wantSign int
	}{
		{pt(3, 2), pt(9, 2), 1},
		{pt(8, 2), pt(9, 2), 1},
		{pt(9, 2), pt(9, 2), -1}, // reached: flip
		{pt(9, 2), pt(1, 2), -1}, // now aiming behind
		{pt(4, 2), pt(1, 2), -1},
		{pt(1, 2), pt(1, 2), 1}, // reached again: flip back
		{pt(1, 2), pt(9, 2), 1},
	}
	for i, s := range steps {
		got := Target(gmap, &e, s.self, q, testTuning)
		if got != s.want {
			t.Fatalf("tick %d: target = %v, want %v", i, got, s.want)
		}
		if e.FlankSign != s.wantSign {
			t.Fatalf("tick %d: sign = %d, want %d", i, e.FlankSign, s.wantSign)
		}
	}
}

func TestFlankStepsBack(t *testing.T) {
	cases := []struct {
		name   string
		walls  []component.Point
		player component.Point
		facing component.Direction
		want   component.Point
	}{
		{"off the map", nil, pt(17, 2), component.DirRight, pt(19, 2)},
		{"inside a wall", []component.Point{pt(9, 2), pt(8, 2)}, pt(5, 2), component.DirRight, pt(7, 2)},
		{"walled in", []component.Point{pt(5, 1), pt(5, 0)}, pt(5, 2), component.DirUp, pt(5, 2)},
		{"facing left", nil, pt(5, 2), component.DirLeft, pt(1, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gmap := openMap(20, 5)
			for _, w := range tc.walls {
				gmap.Set(w, gamemap.TileWall)
			}
			e := component.NewEnemy(component.StrategyFlank, vec(0, 0), 2, pt(0, 0))
			q := Quarry{Tile: tc.player, Facing: tc.facing}
			if got := FlankTarget(gmap, &e, pt(0, 4), q, 4); got != tc.want {
				t.Errorf("target = %v, want %v", got, tc.want)
			}
		})
	}
}
