package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes truncated by byte limit", "日本語のテスト名前ですよね", "日本語のテ"},
		{"emoji truncated by byte limit", "🎮Player🎮Name🎮", "🎮Player🎮Na"},
		{"mixed printable and control", "a\x00b\x01c\x02d", "abcd"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"newlines stripped", "hello\nworld", "helloworld"},
		{"invalid utf-8 dropped", "ab\xffcd", "abcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeName(tc.input)
			if got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		name    string
		term    string
		allowed bool
	}{
		{"xterm-256color", "xterm-256color", true},
		{"tmux", "tmux", true},
		{"linux", "linux", true},
		{"vt100", "vt100", true},
		{"screen", "screen", true},
		{"rxvt-unicode-256color", "rxvt-unicode-256color", true},
		{"unknown term", "evil-term", false},
		{"path traversal", "../../../etc/passwd", false},
		{"empty string", "", false},
		{"xterm-kitty", "xterm-kitty", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := allowedTerms[tc.term]
			if got != tc.allowed {
				t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
			}
		})
	}
}

func TestFileSafe(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"alice", "alice"},
		{"bob_2-x", "bob_2-x"},
		{"../etc", "___etc"},
		{"a b/c", "a_b_c"},
		{"日本", "__"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := fileSafe(tc.in); got != tc.want {
				t.Errorf("fileSafe(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSavePath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	got, err := savePath("../alice")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(tmp, "hungry-horace", "saves", "___alice.json")
	if got != want {
		t.Errorf("savePath = %q, want %q", got, want)
	}
}

func TestLoadOrCreateHostKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "host_key")

	first, err := loadOrCreateHostKey(path, logger)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("key not persisted: %v", err)
	}
	second, err := loadOrCreateHostKey(path, logger)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a, b := first.PublicKey().Marshal(), second.PublicKey().Marshal()
	if string(a) != string(b) {
		t.Error("reloaded key differs from the generated one")
	}
}

func TestOpenCatalogBuiltin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := openCatalog("", "index.yaml", logger)
	if err != nil {
		t.Fatalf("openCatalog: %v", err)
	}
	if c.Len() == 0 {
		t.Error("built-in catalog is empty")
	}
}
