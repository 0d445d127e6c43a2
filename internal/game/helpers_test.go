package game

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/config"
	"hungry-horace/internal/levels"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"
)

// loopLevel is a 7×5 ring: home (1,1) next to the entrance, a bell at (5,1)
// and the exit at (5,3).
var loopLevel = strings.Join([]string{
	"XXXXXXX",
	"e00FFBX",
	"XFXXXFX",
	"XFFFFEX",
	"XXXXXXX",
}, "\n")

const testTile = 12

func pt(x, y int) component.Point { return component.Point{X: x, Y: y} }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.EnemyTick = time.Millisecond
	cfg.FrameInterval = time.Millisecond
	return cfg
}

// testCatalog serves n copies of loopLevel named l0.txt, l1.txt, ...
func testCatalog(t *testing.T, n int) *levels.Catalog {
	t.Helper()
	fsys := fstest.MapFS{}
	var idx strings.Builder
	idx.WriteString("levels:\n")
	for i := range n {
		name := "l" + string(rune('0'+i)) + ".txt"
		fsys[name] = &fstest.MapFile{Data: []byte(loopLevel)}
		idx.WriteString("  - {name: " + name + ", width: 7, height: 5}\n")
	}
	fsys["index.yaml"] = &fstest.MapFile{Data: []byte(idx.String())}
	cat, err := levels.Open(fsys, "index.yaml", discardLogger())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return cat
}

func newTestState(t *testing.T, nLevels int) *State {
	t.Helper()
	st, err := NewState(testConfig(), testCatalog(t, nLevels), discardLogger())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(st.Stop)
	return st
}

// newTestLevel builds a stopped level straight from loopLevel.
func newTestLevel(t *testing.T) *Level {
	t.Helper()
	cat := testCatalog(t, 1)
	grid, spawns, err := cat.Load(0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := testConfig()
	return newLevel(0, "l0.txt", grid, spawns, cfg, cfg.PlayerSpeed, cfg.EnemySpeed, new(atomic.Bool), discardLogger())
}

// waitFor polls cond until it holds or two seconds pass.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

