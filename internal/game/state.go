package game

import (
	"context"
	"fmt"
	"hungry-horace/internal/component"
	"hungry-horace/internal/config"
	"hungry-horace/internal/gamemap"
	"hungry-horace/internal/levels"
	"log/slog"
	"sync"
	"sync/atomic"
)

// State carries one run across levels: the banked score, current speeds,
// the pause flag and the level in play.
type State struct {
	cfg     config.Config
	catalog *levels.Catalog
	logger  *slog.Logger
	paused  atomic.Bool

	mu          sync.Mutex
	ctx         context.Context
	level       *Level
	banked      int
	cleared     int
	playerSpeed int
	enemySpeed  int
	over        bool
	caughtBy    string
}

// EnemyView is the drawable part of an enemy.
type EnemyView struct {
	Pos      component.Vec
	Facing   component.Direction
	Strategy component.Strategy
	State    component.HuntState
	Active   bool
}

// View is a copied snapshot of everything a renderer needs for one frame.
type View struct {
	Width, Height int
	TileSize      int
	Kinds         []gamemap.TileKind // row-major
	Player        component.Actor
	Enemies       []EnemyView
	LevelIndex    int
	LevelName     string
	LevelScore    int
	TotalScore    int
	LevelsCleared int
	Paused        bool
	Outcome       Outcome
}

// NewState loads the first level of the catalog. Enemy loops start with Start.
func NewState(cfg config.Config, catalog *levels.Catalog, logger *slog.Logger) (*State, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{
		cfg:         cfg,
		catalog:     catalog,
		logger:      logger,
		playerSpeed: cfg.PlayerSpeed,
		enemySpeed:  cfg.EnemySpeed,
	}
	lvl, err := s.loadLevel(0)
	if err != nil {
		return nil, err
	}
	s.level = lvl
	return s, nil
}

func (s *State) loadLevel(i int) (*Level, error) {
	grid, spawns, err := s.catalog.Load(i)
	if err != nil {
		return nil, fmt.Errorf("load level %d: %w", i, err)
	}
	n := s.catalog.Len()
	idx := ((i % n) + n) % n
	name := s.catalog.Entry(idx).Name
	s.logger.Info("level loaded", "level", name, "index", idx,
		"player_speed", s.playerSpeed, "enemy_speed", s.enemySpeed)
	return newLevel(idx, name, grid, spawns, s.cfg, s.playerSpeed, s.enemySpeed, &s.paused, s.logger), nil
}

// Start launches the current level's enemy loops under ctx. Later levels
// start under the same ctx.
func (s *State) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	if !s.over {
		s.level.Start(ctx)
	}
}

// Stop joins the current level's enemy loops.
func (s *State) Stop() {
	s.mu.Lock()
	lvl := s.level
	s.mu.Unlock()
	lvl.Stop()
}

// Update runs one player tick. A cleared level is replaced by the next one
// before Update returns; a caught player ends the run.
func (s *State) Update(dir component.Direction, move bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return Caught, nil
	}
	var out Outcome
	if s.paused.Load() {
		out = s.level.Outcome()
	} else {
		out = s.level.UpdatePlayer(dir, move)
	}
	switch out {
	case Caught:
		s.level.Stop()
		s.banked += s.level.Score()
		s.over = true
		s.level.mu.Lock()
		s.caughtBy = s.level.caughtBy.String()
		s.level.mu.Unlock()
		s.logger.Info("run over", "score", s.banked, "levels_cleared", s.cleared)
	case Cleared:
		if err := s.advance(); err != nil {
			s.over = true
			return Caught, err
		}
	}
	return out, nil
}

// advance banks the cleared level and loads the next. Wrapping back to the
// first level speeds everybody up. s.mu must be held.
func (s *State) advance() error {
	s.level.Stop()
	s.banked += s.level.Score()
	s.cleared++
	next := s.level.Index + 1
	if next >= s.catalog.Len() {
		next = 0
		s.speedUp()
	}
	lvl, err := s.loadLevel(next)
	if err != nil {
		return err
	}
	s.level = lvl
	if s.ctx != nil {
		lvl.Start(s.ctx)
	}
	return nil
}

func (s *State) speedUp() {
	ts := s.cfg.TileSize
	if s.playerSpeed >= ts {
		return
	}
	s.playerSpeed = min(s.playerSpeed+s.cfg.SpeedStep, ts-1)
	s.enemySpeed = min(s.enemySpeed+s.cfg.SpeedStep, ts-1)
}

// TogglePause flips the pause flag and returns the new value.
func (s *State) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetPaused sets the pause flag.
func (s *State) SetPaused(p bool) { s.paused.Store(p) }

// Paused reports whether the game is paused.
func (s *State) Paused() bool { return s.paused.Load() }

// Over reports whether the run has ended.
func (s *State) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}

// Level returns the level in play.
func (s *State) Level() *Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Speeds returns the current player and enemy speeds.
func (s *State) Speeds() (player, enemy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerSpeed, s.enemySpeed
}

// Score returns the banked score plus the current level's score. After the
// run ends the level score is already banked.
func (s *State) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return s.banked
	}
	return s.banked + s.level.Score()
}

// View copies out the current frame.
func (s *State) View() View {
	s.mu.Lock()
	lvl, banked, cleared, over := s.level, s.banked, s.cleared, s.over
	s.mu.Unlock()

	v := View{
		Width:         lvl.Grid.Width,
		Height:        lvl.Grid.Height,
		TileSize:      s.cfg.TileSize,
		Kinds:         lvl.Grid.Kinds(),
		LevelIndex:    lvl.Index,
		LevelName:     lvl.Name,
		LevelsCleared: cleared,
		Paused:        s.paused.Load(),
	}
	lvl.mu.Lock()
	v.Player = lvl.player
	v.LevelScore = lvl.score
	v.Outcome = lvl.outcome
	lvl.mu.Unlock()
	v.TotalScore = banked
	if !over {
		v.TotalScore += v.LevelScore
	}
	for _, e := range lvl.Enemies() {
		v.Enemies = append(v.Enemies, EnemyView{
			Pos:      e.Pos,
			Facing:   e.Facing,
			Strategy: e.Strategy,
			State:    e.State,
			Active:   e.Active,
		})
	}
	return v
}

// fillRunLog copies the run's results into rl.
func (s *State) fillRunLog(rl *RunLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rl.Score = s.banked
	if !s.over {
		rl.Score += s.level.Score()
	}
	rl.LevelsCleared = s.cleared
	rl.LevelReached = s.level.Name
	rl.CaughtBy = s.caughtBy
}
