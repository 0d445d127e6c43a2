// Package ssh adapts gliderlabs SSH sessions to tcell screens so each
// connection can run its own game.
package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions opened without a pseudo-terminal.
var ErrNoPTY = errors.New("session has no PTY")

// DefaultTerm is used when the client sends no usable TERM.
const DefaultTerm = "xterm-256color"

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each connected SSH client gets its own SessionTty → tcell.Screen pair.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
	watch  sync.Once
}

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty.
// pty holds the initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

// Read reads raw bytes from the SSH session's stdin (keyboard input).
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write writes rendered output to the SSH session's stdout.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH session channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op; the SSH channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the handler goroutine owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH flushes writes immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers the callback invoked on every window change. The
// window-change channel is drained by a single goroutine for the lifetime
// of the session, however often tcell re-registers.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
	t.watch.Do(func() { go t.watchWindow() })
}

func (t *SessionTty) watchWindow() {
	for win := range t.winCh {
		t.resize(win)
	}
}

func (t *SessionTty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.cb
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// termMu serialises the TERM lookup: tcell reads terminfo from the process
// environment.
var termMu sync.Mutex

// Term returns the TERM value from a session environment, or "" if unset.
func Term(environ []string) string {
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok {
			return v
		}
	}
	return ""
}

// NewScreen creates and initialises a tcell screen on the session's PTY
// using terminal type term. The caller finalises the screen.
func NewScreen(s gossh.Session, term string) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewSessionTty(s, pty, winCh)

	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	}
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal %q: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}
