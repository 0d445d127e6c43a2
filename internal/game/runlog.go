package game

import (
	"bufio"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunLog records one finished run.
type RunLog struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Score         int       `json:"score"`
	LevelsCleared int       `json:"levels_cleared"`
	LevelReached  string    `json:"level_reached"`
	CaughtBy      string    `json:"caught_by,omitempty"`
	Quit          bool      `json:"quit"`
}

func newRunLog() RunLog {
	return RunLog{ID: uuid.NewString(), Timestamp: time.Now().UTC()}
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are logged but never end the game.
func saveRunLog(rl RunLog, logger *slog.Logger) {
	dir, err := DataDir()
	if err != nil {
		logger.Warn("run log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(rl)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}

// bestScore returns the highest score in runs.jsonl, or 0 when there is no
// log yet. Lines that do not decode are skipped.
func bestScore(logger *slog.Logger) int {
	dir, err := DataDir()
	if err != nil {
		return 0
	}
	f, err := os.Open(filepath.Join(dir, "runs.jsonl"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("run log: cannot open file", "error", err)
		}
		return 0
	}
	defer f.Close()

	best := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rl RunLog
		if err := json.Unmarshal(sc.Bytes(), &rl); err != nil {
			logger.Debug("run log: skipping bad line", "error", err)
			continue
		}
		best = max(best, rl.Score)
	}
	if err := sc.Err(); err != nil {
		logger.Warn("run log: read failed", "error", err)
	}
	return best
}

// DataDir returns the directory for run logs and saves.
// Uses $XDG_DATA_HOME/hungry-horace,
// defaulting to ~/.local/share/hungry-horace.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "hungry-horace"), nil
}
