// hungry-horace-server serves the game over SSH. Every connection plays
// its own independent run. Build:
//
//	go build -o hungry-horace-server ./cmd/server
//
// Usage:
//
//	./hungry-horace-server [-port 2222] [-key server_host_key] [-config horace.yaml] [-levels dir] [-watch]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"hungry-horace/assets"
	"hungry-horace/internal/config"
	"hungry-horace/internal/game"
	"hungry-horace/internal/levels"
	internalssh "hungry-horace/internal/ssh"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds player names taken from the SSH user.
const maxNameBytes = 16

// allowedTerms are the terminal types passed through to terminfo. Anything
// else falls back to internalssh.DefaultTerm.
var allowedTerms = map[string]bool{
	"xterm-256color":        true,
	"xterm":                 true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"screen":                true,
	"screen-256color":       true,
	"rxvt-unicode-256color": true,
	"rxvt-unicode":          true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	cfgFile := flag.String("config", "", "YAML tuning file (defaults when empty)")
	levelDir := flag.String("levels", "", "Directory holding index.yaml and level files (overrides level_dir)")
	watch := flag.Bool("watch", false, "Reload levels when files under -levels change")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*port, *keyFile, *cfgFile, *levelDir, *watch, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(port int, keyFile, cfgFile, levelDir string, watch bool, logger *slog.Logger) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if levelDir == "" {
		levelDir = cfg.LevelDir
	}
	catalog, err := openCatalog(levelDir, cfg.LevelIndex, logger)
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(keyFile, logger)
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

	h := &host{cfg: cfg, catalog: catalog, logger: logger}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info("listening", "addr", srv.Addr, "levels", catalog.Len())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

func openCatalog(dir, index string, logger *slog.Logger) (*levels.Catalog, error) {
	if dir == "" {
		return levels.Open(assets.Levels(), index, logger)
	}
	return levels.OpenDir(dir, index, logger)
}

// host runs one game per SSH session, all sharing the config and levels.
type host struct {
	cfg     config.Config
	catalog *levels.Catalog
	logger  *slog.Logger
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// until the player quits or the connection drops.
func (h *host) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "horace"
	}
	logger := h.logger.With("session", uuid.NewString()[:8], "player", name)

	term := internalssh.Term(s.Environ())
	if !allowedTerms[term] {
		logger.Debug("unsupported terminal, using default", "term", term)
		term = internalssh.DefaultTerm
	}

	screen, err := internalssh.NewScreen(s, term)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if err != nil {
		logger.Warn("screen setup failed", "err", err)
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	logger.Info("session started", "term", term)
	g := game.New(screen, h.cfg, h.catalog, logger)
	if path, err := savePath(name); err == nil {
		g.SavePath = path
	}
	if err := g.Run(s.Context()); err != nil {
		logger.Warn("game ended with error", "err", err)
	}
	logger.Info("session ended")
}

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fileSafe maps a player name to a file name component.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return '_'
	}, name)
}

// savePath gives each player their own save slot in the data dir.
func savePath(name string) (string, error) {
	dir, err := game.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "saves", fileSafe(name)+".json"), nil
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run; failure only costs a new key next time.
	if pemBlock, err := xssh.MarshalPrivateKey(key, "hungry-horace server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			logger.Warn("host key not saved", "path", path, "err", err)
		}
	}
	return signer, nil
}
