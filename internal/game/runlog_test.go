package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDataDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir returned error: %v", err)
	}
	want := filepath.Join(tmp, "hungry-horace")
	if dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestDataDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "") // force the fallback path

	dir, err := DataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", "hungry-horace")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func TestNewRunLogID(t *testing.T) {
	a, b := newRunLog(), newRunLog()
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Error("run IDs should be unique")
	}
}

func TestSaveRunLog(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	rl := newRunLog()
	rl.Score = 420
	rl.LevelReached = "cellar.txt"
	rl.CaughtBy = "flank"
	saveRunLog(rl, discardLogger())

	logPath := filepath.Join(tmp, "hungry-horace", "runs.jsonl")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "cellar.txt") || !strings.Contains(content, rl.ID) {
		t.Errorf("log file does not contain the run; got: %q", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Errorf("log entry should end with newline; got: %q", content)
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	for i := range 3 {
		saveRunLog(RunLog{ID: "run", Score: i * 10}, discardLogger())
	}

	logPath := filepath.Join(tmp, "hungry-horace", "runs.jsonl")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("runs.jsonl not found: %v", err)
	}
	// Each call appends one JSON line; count the newlines.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}

func TestBestScore(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	if got := bestScore(discardLogger()); got != 0 {
		t.Errorf("best with no log = %d, want 0", got)
	}

	for _, s := range []int{120, 990, 40} {
		saveRunLog(RunLog{Score: s}, discardLogger())
	}
	f, err := os.OpenFile(filepath.Join(tmp, "hungry-horace", "runs.jsonl"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n")
	f.Close()

	if got := bestScore(discardLogger()); got != 990 {
		t.Errorf("best = %d, want 990", got)
	}
}
