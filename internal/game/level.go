package game

import (
	"context"
	"errors"
	"hungry-horace/internal/component"
	"hungry-horace/internal/config"
	"hungry-horace/internal/gamemap"
	"hungry-horace/internal/system"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome is how a level stands after a tick.
type Outcome uint8

const (
	Playing Outcome = iota
	Cleared
	Caught
)

var outcomeNames = [...]string{"playing", "cleared", "caught"}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// errRoundOver ends the enemy group once the player has been caught.
var errRoundOver = errors.New("round over")

type enemySlot struct {
	mu sync.Mutex
	e  component.Enemy
}

// Level is one level in play. The player and the level score belong to the
// UI goroutine; each active enemy runs in its own goroutine. Lock order is
// Level.mu before any enemy mutex.
type Level struct {
	Index  int
	Name   string
	Grid   *gamemap.GameMap
	Spawns gamemap.Spawns

	cfg     config.Config
	tuning  system.Tuning
	logger  *slog.Logger
	paused  *atomic.Bool
	enemies []*enemySlot

	mu       sync.Mutex
	player   component.Actor
	score    int
	outcome  Outcome
	caughtBy component.Strategy

	running  bool
	launched []bool
	ctx      context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
}

func newLevel(index int, name string, grid *gamemap.GameMap, spawns gamemap.Spawns,
	cfg config.Config, playerSpeed, enemySpeed int, paused *atomic.Bool, logger *slog.Logger) *Level {
	ts := cfg.TileSize
	l := &Level{
		Index:    index,
		Name:     name,
		Grid:     grid,
		Spawns:   spawns,
		cfg:      cfg,
		tuning:   cfg.Tuning(),
		logger:   logger,
		paused:   paused,
		player:   component.Actor{Pos: spawns.Home.Origin(ts), Facing: component.DirRight, Speed: playerSpeed},
		launched: make([]bool, len(cfg.Enemies)),
	}
	for _, s := range cfg.Enemies {
		e := component.NewEnemy(s, spawns.Exit.Origin(ts), enemySpeed, spawns.Home)
		l.enemies = append(l.enemies, &enemySlot{e: e})
	}
	return l
}

// Start wakes the enemies that are due and launches a loop for each active
// one. Loops stop when ctx is cancelled or Stop is called.
func (l *Level) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running || l.outcome != Playing {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.group, l.ctx = errgroup.WithContext(ctx)
	l.running = true
	l.activateDue()
}

// Stop cancels the enemy loops and waits for all of them to return.
func (l *Level) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	clear(l.launched)
	cancel, group := l.cancel, l.group
	l.mu.Unlock()

	cancel()
	if err := group.Wait(); err != nil && !errors.Is(err, errRoundOver) {
		l.logger.Error("enemy loop failed", "level", l.Name, "error", err)
	}
}

// activateDue wakes enemy i once the level score passes i*step; the first
// enemy is always awake. l.mu must be held.
func (l *Level) activateDue() {
	for i, s := range l.enemies {
		s.mu.Lock()
		woke := !s.e.Active && (i == 0 || l.score > i*l.cfg.EnemyScoreStep)
		if woke {
			s.e.Active = true
		}
		active := s.e.Active
		strategy := s.e.Strategy
		s.mu.Unlock()

		if woke {
			l.logger.Debug("enemy active", "level", l.Name, "enemy", i, "strategy", strategy)
		}
		if active && l.running && !l.launched[i] {
			l.launched[i] = true
			l.group.Go(func() error { return l.runEnemy(l.ctx, i) })
		}
	}
}

func (l *Level) runEnemy(ctx context.Context, i int) error {
	ticker := time.NewTicker(l.cfg.EnemyTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if l.paused.Load() {
			continue
		}
		if l.StepEnemy(i) == system.ChaseCaught {
			return errRoundOver
		}
	}
}

// StepEnemy runs one chase tick for enemy i against the current player
// position. The enemy loops call it on every tick.
func (l *Level) StepEnemy(i int) system.ChaseOutcome {
	ts := l.cfg.TileSize
	l.mu.Lock()
	if l.outcome != Playing {
		l.mu.Unlock()
		return system.ChaseIdle
	}
	env := system.ChaseEnv{
		Grid:     l.Grid,
		TileSize: ts,
		Player:   l.player,
		Home:     l.Spawns.Home,
		Tuning:   l.tuning,
	}
	score := l.score
	l.mu.Unlock()

	s := l.enemies[i]
	s.mu.Lock()
	out := system.ChaseStep(&s.e, env, l.logger)
	dropped := system.DropSpecialFood(l.Grid, &s.e, score, l.cfg.SpecialFoodScore, ts)
	strategy := s.e.Strategy
	s.mu.Unlock()

	if dropped {
		l.logger.Debug("special food dropped", "level", l.Name, "score", score)
	}
	switch out {
	case system.ChaseCaught:
		l.mu.Lock()
		if l.outcome == Playing {
			l.outcome = Caught
			l.caughtBy = strategy
		}
		l.mu.Unlock()
		l.logger.Info("player caught", "level", l.Name, "by", strategy)
	case system.ChaseEaten:
		l.mu.Lock()
		l.score += l.cfg.SpecialPoints
		l.mu.Unlock()
		l.logger.Debug("enemy eaten", "level", l.Name, "enemy", i)
	}
	return out
}

// UpdatePlayer runs one player tick: move (when move is set), eat what the
// sprite touches, wake enemies and check for the exit.
func (l *Level) UpdatePlayer(dir component.Direction, move bool) Outcome {
	ts := l.cfg.TileSize
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.outcome != Playing {
		return l.outcome
	}
	if move {
		system.MovePlayer(l.Grid, &l.player, dir, ts)
	}
	pos := l.player.Pos
	if system.Consume(l.Grid, pos, ts, gamemap.TileNormalFood) {
		l.score += l.cfg.FoodPoints
	}
	if system.Consume(l.Grid, pos, ts, gamemap.TileSpecialFood) {
		l.score += l.cfg.SpecialPoints
	}
	if system.Consume(l.Grid, pos, ts, gamemap.TileBell) {
		l.score += l.cfg.SpecialPoints
		l.ringBell()
	}
	l.activateDue()
	if _, ok := system.Occupies(l.Grid, pos, ts, gamemap.TileExit); ok {
		l.outcome = Cleared
		l.logger.Info("level cleared", "level", l.Name, "score", l.score)
	}
	return l.outcome
}

// ringBell turns every active enemy into prey. l.mu must be held.
func (l *Level) ringBell() {
	for _, s := range l.enemies {
		s.mu.Lock()
		if s.e.Active {
			s.e.State = component.Hunted
		}
		s.mu.Unlock()
	}
}

// Score returns the points earned on this level so far.
func (l *Level) Score() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.score
}

// Outcome returns the level's current outcome.
func (l *Level) Outcome() Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}

// Player returns a copy of the player actor.
func (l *Level) Player() component.Actor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.player
}

// Enemies returns a copy of every enemy.
func (l *Level) Enemies() []component.Enemy {
	out := make([]component.Enemy, len(l.enemies))
	for i, s := range l.enemies {
		s.mu.Lock()
		out[i] = s.e
		s.mu.Unlock()
	}
	return out
}
