// hungry-horace is a terminal chase game: eat the food, ring the bell and
// reach the exit before the keepers catch you.
package main

import (
	"context"
	"flag"
	"fmt"
	"hungry-horace/assets"
	"hungry-horace/internal/config"
	"hungry-horace/internal/game"
	"hungry-horace/internal/levels"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfgFile := flag.String("config", "", "YAML tuning file (defaults when empty)")
	levelDir := flag.String("levels", "", "Directory holding index.yaml and level files (overrides level_dir)")
	watch := flag.Bool("watch", false, "Reload levels when files under -levels change")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	if err := run(*cfgFile, *levelDir, *watch, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, levelDir string, watch bool, logLevel string) error {
	logger, closeLog, err := fileLogger(logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if levelDir == "" {
		levelDir = cfg.LevelDir
	}
	var catalog *levels.Catalog
	if levelDir == "" {
		catalog, err = levels.Open(assets.Levels(), cfg.LevelIndex, logger)
	} else {
		catalog, err = levels.OpenDir(levelDir, cfg.LevelIndex, logger)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if watch && levelDir != "" {
		go func() {
			if err := catalog.Watch(ctx, levelDir); err != nil {
				logger.Warn("level watcher stopped", "err", err)
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	return game.New(screen, cfg, catalog, logger).Run(ctx)
}

// fileLogger writes to game.log in the data dir; the terminal belongs to
// the game. Falls back to discarding when the dir is unavailable.
func fileLogger(level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	dir, err := game.DataDir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "game.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}
