package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
	"os"
	"path/filepath"
	"strings"
)

const snapshotVersion = 1

// ErrCorruptState is wrapped by every Restore and LoadSnapshot failure
// caused by inconsistent saved data.
var ErrCorruptState = errors.New("corrupt game state")

// Snapshot is the full state of a run at one instant: the grid as it is
// now (eaten food stays eaten), every actor and the scores.
type Snapshot struct {
	Version       int               `json:"version"`
	LevelIndex    int               `json:"level_index"`
	LevelName     string            `json:"level_name"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Rows          []string          `json:"rows"`
	Player        component.Actor   `json:"player"`
	Enemies       []component.Enemy `json:"enemies"`
	LevelScore    int               `json:"level_score"`
	BankedScore   int               `json:"banked_score"`
	LevelsCleared int               `json:"levels_cleared"`
	PlayerSpeed   int               `json:"player_speed"`
	EnemySpeed    int               `json:"enemy_speed"`
}

// Snapshot captures the run. It is taken between ticks, so enemy loops may
// keep running.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	lvl := s.level
	snap := Snapshot{
		Version:       snapshotVersion,
		LevelIndex:    lvl.Index,
		LevelName:     lvl.Name,
		Width:         lvl.Grid.Width,
		Height:        lvl.Grid.Height,
		Rows:          lvl.Grid.Rows(),
		BankedScore:   s.banked,
		LevelsCleared: s.cleared,
		PlayerSpeed:   s.playerSpeed,
		EnemySpeed:    s.enemySpeed,
	}
	lvl.mu.Lock()
	snap.Player = lvl.player
	snap.LevelScore = lvl.score
	lvl.mu.Unlock()
	snap.Enemies = lvl.Enemies()
	return snap
}

// Restore replaces the run with snap. Actors may be anywhere walkable; they
// need not be on their spawn tiles. On error the current run is untouched.
func (s *State) Restore(snap Snapshot) error {
	lvl, err := s.levelFromSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level.Stop()
	s.level = lvl
	s.banked = snap.BankedScore
	s.cleared = snap.LevelsCleared
	s.playerSpeed = snap.PlayerSpeed
	s.enemySpeed = snap.EnemySpeed
	s.over = false
	s.caughtBy = ""
	if s.ctx != nil {
		lvl.Start(s.ctx)
	}
	s.logger.Info("game restored", "level", lvl.Name, "score", s.banked+snap.LevelScore)
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptState, fmt.Sprintf(format, args...))
}

func (s *State) levelFromSnapshot(snap Snapshot) (*Level, error) {
	ts := s.cfg.TileSize
	if snap.Version != snapshotVersion {
		return nil, corrupt("version %d, want %d", snap.Version, snapshotVersion)
	}
	if snap.Width <= 0 || snap.Height <= 0 {
		return nil, corrupt("invalid size %dx%d", snap.Width, snap.Height)
	}
	if len(snap.Rows) != snap.Height {
		return nil, corrupt("%d rows for height %d", len(snap.Rows), snap.Height)
	}
	for y, row := range snap.Rows {
		if len(row) != snap.Width {
			return nil, corrupt("row %d has %d tiles, want %d", y, len(row), snap.Width)
		}
	}
	grid, err := gamemap.Parse(strings.NewReader(strings.Join(snap.Rows, "\n")), snap.Width, snap.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	spawns, err := grid.Spawns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if snap.LevelIndex < 0 {
		return nil, corrupt("level index %d", snap.LevelIndex)
	}
	if snap.LevelScore < 0 || snap.BankedScore < 0 || snap.LevelsCleared < 0 {
		return nil, corrupt("negative score")
	}
	for _, sp := range []int{snap.PlayerSpeed, snap.EnemySpeed} {
		if sp <= 0 || sp >= ts {
			return nil, corrupt("speed %d outside 1..%d", sp, ts-1)
		}
	}
	if len(snap.Enemies) != len(s.cfg.Enemies) {
		return nil, corrupt("%d enemies, want %d", len(snap.Enemies), len(s.cfg.Enemies))
	}
	if p := snap.Player.Tile(ts); !grid.Walkable(p) {
		return nil, corrupt("player on unwalkable tile %v", p)
	}
	if snap.Player.Speed != snap.PlayerSpeed {
		return nil, corrupt("player speed %d, run speed %d", snap.Player.Speed, snap.PlayerSpeed)
	}
	for i, e := range snap.Enemies {
		if p := e.Tile(ts); !grid.Walkable(p) {
			return nil, corrupt("enemy %d on unwalkable tile %v", i, p)
		}
		if e.FlankSign != 1 && e.FlankSign != -1 {
			return nil, corrupt("enemy %d flank sign %d", i, e.FlankSign)
		}
		if !grid.InBounds(e.AmbushTarget) {
			return nil, corrupt("enemy %d ambush target %v off the map", i, e.AmbushTarget)
		}
		if e.Speed <= 0 || e.Speed >= ts {
			return nil, corrupt("enemy %d speed %d", i, e.Speed)
		}
	}

	lvl := newLevel(snap.LevelIndex, snap.LevelName, grid, spawns, s.cfg,
		snap.PlayerSpeed, snap.EnemySpeed, &s.paused, s.logger)
	lvl.player = snap.Player
	lvl.score = snap.LevelScore
	for i, e := range snap.Enemies {
		lvl.enemies[i].e = e
	}
	return lvl, nil
}

// SaveSnapshot writes snap as JSON to path, creating parent directories.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("save: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot. Undecodable data
// is reported as ErrCorruptState; the contents are checked by Restore.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("load %s: %w: %w", path, ErrCorruptState, err)
	}
	return snap, nil
}

// savePath is where Ctrl+S writes the game.
func savePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "save.json"), nil
}
