package game

import (
	"context"
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"testing"
)

// clearLevel puts the player on the exit with the given level score and
// runs one tick.
func clearLevel(t *testing.T, st *State, score int) {
	t.Helper()
	lvl := st.Level()
	lvl.mu.Lock()
	lvl.player.Pos = lvl.Spawns.Exit.Origin(testTile)
	lvl.score = score
	lvl.mu.Unlock()
	out, err := st.Update(component.DirRight, false)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out != Cleared {
		t.Fatalf("outcome = %v, want cleared", out)
	}
}

func TestStateAdvancesAndWraps(t *testing.T) {
	st := newTestState(t, 2)

	clearLevel(t, st, 50)
	if got := st.Level().Index; got != 1 {
		t.Fatalf("level = %d, want 1", got)
	}
	if got := st.Score(); got != 50 {
		t.Errorf("score = %d, want 50 banked", got)
	}
	if p, e := st.Speeds(); p != 3 || e != 2 {
		t.Errorf("speeds = %d/%d, want unchanged 3/2", p, e)
	}

	clearLevel(t, st, 20)
	if got := st.Level().Index; got != 0 {
		t.Fatalf("level = %d, want wrap to 0", got)
	}
	if got := st.Score(); got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
	if p, e := st.Speeds(); p != 4 || e != 3 {
		t.Errorf("speeds = %d/%d, want 4/3 after the wrap", p, e)
	}
	if got := st.Level().Player().Speed; got != 4 {
		t.Errorf("new level player speed = %d, want 4", got)
	}
	if got := st.View().LevelsCleared; got != 2 {
		t.Errorf("levels cleared = %d, want 2", got)
	}
}

func TestStateNewLevelIsFresh(t *testing.T) {
	st := newTestState(t, 1)
	lvl := st.Level()
	lvl.mu.Lock()
	lvl.player.Pos = lvl.Spawns.Home.Origin(testTile)
	lvl.mu.Unlock()
	food := lvl.Grid.Count(gamemap.TileNormalFood)
	lvl.Grid.Set(pt(3, 1), gamemap.TileEmpty)

	clearLevel(t, st, 0)
	next := st.Level()
	if next == lvl {
		t.Fatal("level was not replaced")
	}
	if got := next.Grid.Count(gamemap.TileNormalFood); got != food {
		t.Errorf("replayed level has %d food, want %d", got, food)
	}
}

func TestSpeedUpCapped(t *testing.T) {
	st := newTestState(t, 1)
	st.playerSpeed, st.enemySpeed = 11, 10
	st.speedUp()
	if st.playerSpeed != 11 || st.enemySpeed != 11 {
		t.Errorf("speeds = %d/%d, want 11/11", st.playerSpeed, st.enemySpeed)
	}
}

func TestStateCaught(t *testing.T) {
	st := newTestState(t, 1)
	lvl := st.Level()
	lvl.enemies[0].e.Active = true
	lvl.player.Pos = component.Vec{X: 60, Y: 30}
	lvl.score = 40
	lvl.StepEnemy(0)

	out, err := st.Update(component.DirRight, true)
	if err != nil || out != Caught {
		t.Fatalf("Update = %v, %v; want caught", out, err)
	}
	if !st.Over() {
		t.Error("run should be over")
	}
	if got := st.Score(); got != 40 {
		t.Errorf("score = %d, want 40 banked", got)
	}
	var rl RunLog
	st.fillRunLog(&rl)
	if rl.Score != 40 || rl.CaughtBy != "direct" || rl.LevelReached != "l0.txt" {
		t.Errorf("run log = %+v", rl)
	}
	if out, _ := st.Update(component.DirRight, true); out != Caught {
		t.Errorf("Update after game over = %v, want caught", out)
	}
}

func TestStatePause(t *testing.T) {
	st := newTestState(t, 1)
	if st.TogglePause() != true || !st.Paused() {
		t.Fatal("first toggle should pause")
	}
	before := st.Level().Player()
	st.Update(component.DirRight, true)
	if st.Level().Player() != before {
		t.Error("player moved while paused")
	}
	if st.View().Paused != true {
		t.Error("view should report paused")
	}
	if st.TogglePause() != false {
		t.Error("second toggle should resume")
	}
	st.Update(component.DirRight, true)
	if st.Level().Player() == before {
		t.Error("player did not move after resuming")
	}
}

func TestStateLoopsCatchPlayer(t *testing.T) {
	st := newTestState(t, 1)
	lvl := st.Level()
	lvl.player.Pos = pt(5, 2).Origin(testTile)
	st.Start(context.Background())

	waitFor(t, "the chaser to catch the player", func() bool {
		out, err := st.Update(component.DirUp, false)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		return out == Caught
	})
	if got := st.Score(); got != 10 {
		t.Errorf("score = %d, want the food under the player", got)
	}
}

func TestViewCopies(t *testing.T) {
	st := newTestState(t, 1)
	v := st.View()
	if v.Width != 7 || v.Height != 5 || len(v.Kinds) != 35 {
		t.Fatalf("view size %dx%d with %d kinds", v.Width, v.Height, len(v.Kinds))
	}
	if len(v.Enemies) != 3 {
		t.Fatalf("view has %d enemies, want 3", len(v.Enemies))
	}
	v.Kinds[0] = gamemap.TileEmpty
	if st.Level().Grid.Kind(pt(0, 0)) != gamemap.TileWall {
		t.Error("view shares tile storage with the grid")
	}
	if v.LevelName != "l0.txt" || v.Outcome != Playing {
		t.Errorf("view = %+v", v)
	}
}
