package game

import (
	"context"
	"fmt"
	"hungry-horace/assets"
	"hungry-horace/internal/component"
	"hungry-horace/internal/config"
	"hungry-horace/internal/levels"
	"hungry-horace/internal/render"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Game is the top-level orchestrator for one terminal: it owns input, the
// frame ticker and the end screen, and runs one State per attempt.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      config.Config
	catalog  *levels.Catalog
	logger   *slog.Logger
	events   <-chan tcell.Event

	// SavePath is where Ctrl+S and Ctrl+L read and write. Empty means
	// save.json in the data dir.
	SavePath string

	state   *State
	heading component.Direction
	moving  bool
	message string
	best    int
	runLog  RunLog
}

// New creates a Game drawing on screen. The caller owns the screen and
// finalises it after Run returns.
func New(screen tcell.Screen, cfg config.Config, catalog *levels.Catalog, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		cfg:      cfg,
		catalog:  catalog,
		logger:   logger,
	}
}

// Run plays until the player quits, the screen closes or ctx is done.
// Supports multiple consecutive runs via Try Again.
func (g *Game) Run(ctx context.Context) error {
	g.events = pollEvents(g.screen)
	for {
		quit, err := g.playRun(ctx)
		if err != nil {
			return err
		}
		if quit || !g.showEndScreen(ctx) {
			return nil
		}
	}
}

// pollEvents forwards screen events to a channel, closed when the screen is
// finalised.
func pollEvents(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 32)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// playRun plays one attempt. quit is true when the player left before
// being caught.
func (g *Game) playRun(ctx context.Context) (quit bool, err error) {
	st, err := NewState(g.cfg, g.catalog, g.logger)
	if err != nil {
		return false, err
	}
	g.state = st
	g.heading = component.DirRight
	g.moving = false
	g.runLog = newRunLog()
	g.best = bestScore(g.logger)
	g.message = assets.LevelIntro(0)
	g.logger.Info("run started", "run", g.runLog.ID)

	st.Start(ctx)
	ticker := time.NewTicker(g.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.finishRun(true)
			return true, nil
		case ev, ok := <-g.events:
			if !ok {
				g.finishRun(true)
				return true, nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
			case *tcell.EventKey:
				if g.handleAction(keyToAction(ev)) {
					g.finishRun(true)
					return true, nil
				}
			}
		case <-ticker.C:
			out, err := st.Update(g.heading, g.moving)
			if err != nil {
				st.Stop()
				return false, err
			}
			if out == Cleared {
				lvl := st.Level()
				g.moving = false
				g.message = fmt.Sprintf("Level cleared! %s", assets.LevelIntro(lvl.Index))
			}
			g.draw()
			if out == Caught {
				g.finishRun(false)
				return false, nil
			}
		}
	}
}

// handleAction applies one key action and reports whether the player quit.
func (g *Game) handleAction(a Action) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionPause:
		if g.state.TogglePause() {
			g.message = "Paused. Space to resume."
		} else {
			g.message = ""
		}
	case ActionSave:
		g.save()
	case ActionLoad:
		g.load()
	default:
		if d, ok := actionToDirection(a); ok {
			g.heading = d
			g.moving = true
		}
	}
	return false
}

func (g *Game) snapshotPath() (string, error) {
	if g.SavePath != "" {
		return g.SavePath, nil
	}
	return savePath()
}

// save pauses the game and writes a snapshot.
func (g *Game) save() {
	g.state.SetPaused(true)
	path, err := g.snapshotPath()
	if err == nil {
		err = SaveSnapshot(path, g.state.Snapshot())
	}
	if err != nil {
		g.logger.Warn("save failed", "error", err)
		g.message = "Save failed."
		return
	}
	g.logger.Info("game saved", "path", path)
	g.message = "Game saved. Space to resume."
}

// load restores the saved snapshot, paused.
func (g *Game) load() {
	path, err := g.snapshotPath()
	if err != nil {
		g.logger.Warn("load failed", "error", err)
		g.message = "Load failed."
		return
	}
	snap, err := LoadSnapshot(path)
	if err == nil {
		g.state.SetPaused(true)
		err = g.state.Restore(snap)
	}
	if err != nil {
		g.logger.Warn("load failed", "path", path, "error", err)
		g.message = "Load failed."
		return
	}
	g.heading = snap.Player.Facing
	g.moving = false
	g.message = "Game loaded. Space to resume."
}

func (g *Game) finishRun(quit bool) {
	g.state.Stop()
	g.runLog.Quit = quit
	g.state.fillRunLog(&g.runLog)
	saveRunLog(g.runLog, g.logger)
	g.logger.Info("run finished", "run", g.runLog.ID, "score", g.runLog.Score,
		"levels_cleared", g.runLog.LevelsCleared, "quit", quit)
}

// draw renders the current view and HUD.
func (g *Game) draw() {
	v := g.state.View()
	sprites := make([]render.Sprite, 0, len(v.Enemies)+1)
	for _, e := range v.Enemies {
		if !e.Active {
			continue
		}
		glyph := assets.EnemyFor(e.Strategy).Glyph
		if e.State == component.Hunted {
			glyph = assets.GlyphHunted
		}
		sprites = append(sprites, render.Sprite{Pos: e.Pos, Glyph: glyph, Style: tcell.StyleDefault})
	}
	player := assets.GlyphPlayer
	if v.Outcome == Caught {
		player = assets.GlyphCaught
	}
	sprites = append(sprites, render.Sprite{Pos: v.Player.Pos, Glyph: player, Style: tcell.StyleDefault})

	g.renderer.DrawFrame(render.Scene{
		Level:    v.LevelIndex,
		Width:    v.Width,
		Height:   v.Height,
		TileSize: v.TileSize,
		Kinds:    v.Kinds,
		Focus:    v.Player.Tile(v.TileSize),
		Sprites:  sprites,
	})
	g.renderer.DrawHUD(render.Status{
		Level:      v.LevelName,
		LevelScore: v.LevelScore,
		TotalScore: v.TotalScore,
		BestScore:  g.best,
		Paused:     v.Paused,
		Message:    g.message,
		Help:       assets.HelpLine,
	})
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to try again, false to quit.
func (g *Game) showEndScreen(ctx context.Context) bool {
	rl := g.runLog
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	var keeper assets.EnemyDef
	var s component.Strategy
	if err := s.UnmarshalText([]byte(rl.CaughtBy)); err == nil {
		keeper = assets.EnemyFor(s)
	}

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := range sw {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		g.putText(2, y, "THE KEEPERS HAVE YOU", gold)
		badge := "[CAUGHT]"
		g.putText(sw-len(badge)-1, y, badge, red)
		y += 2

		label(y, "Score:", fmt.Sprintf("%d", rl.Score))
		y++
		label(y, "Best:", fmt.Sprintf("%d", max(g.best, rl.Score)))
		y++
		label(y, "Levels Cleared:", fmt.Sprintf("%d", rl.LevelsCleared))
		y++
		label(y, "Level Reached:", rl.LevelReached)
		y += 2

		if keeper.Name != "" {
			label(y, "Caught By:", keeper.Glyph+" "+keeper.Name)
			y++
			g.putText(4, y, keeper.Lore, dim)
			y++
		}
		y++

		sep(y)
		y += 2

		g.putText(2, y, "[R] Try Again", green)
		g.putText(18, y, "[Q] Quit", red)

		g.screen.Show()

		var ev tcell.Event
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-g.events:
			if !ok {
				return false
			}
			ev = e
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			continue // redraw on resize
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
