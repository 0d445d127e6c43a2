// Package levels loads the ordered list of levels the game cycles through.
package levels

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"hungry-horace/internal/gamemap"
	"hungry-horace/internal/generate"
)

// ErrNoLevels is returned when an index lists no levels.
var ErrNoLevels = errors.New("level index is empty")

// Entry describes one level. Width and Height are in tiles; a level file
// carries no size of its own.
type Entry struct {
	Name     string        `yaml:"name"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Generate *GenerateSpec `yaml:"generate,omitempty"`
}

// GenerateSpec marks an entry as procedurally generated.
type GenerateSpec struct {
	Seed      int64  `yaml:"seed"`
	Corridors string `yaml:"corridors"` // "l" (default), "z" or "straight"
	BellEvery int    `yaml:"bell_every"`
}

type indexFile struct {
	Levels []Entry `yaml:"levels"`
}

// Catalog is a level index read from a file system. It is safe for
// concurrent use; Reload swaps the entry list atomically.
type Catalog struct {
	fsys   fs.FS
	index  string
	logger *slog.Logger

	mu      sync.RWMutex
	entries []Entry
	version int
}

// Open reads and validates the index file at path index inside fsys.
func Open(fsys fs.FS, index string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{fsys: fsys, index: index, logger: logger}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// OpenDir opens the index file named index inside directory dir.
func OpenDir(dir, index string, logger *slog.Logger) (*Catalog, error) {
	return Open(os.DirFS(dir), index, logger)
}

// Reload re-reads the index. On error the previous entries stay in place.
func (c *Catalog) Reload() error {
	entries, err := readIndex(c.fsys, c.index)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = entries
	c.version++
	c.mu.Unlock()
	c.logger.Info("level index loaded", "index", c.index, "levels", len(entries))
	return nil
}

func readIndex(fsys fs.FS, path string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	var idx indexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", path, err)
	}
	if len(idx.Levels) == 0 {
		return nil, fmt.Errorf("levels: %s: %w", path, ErrNoLevels)
	}
	for i, e := range idx.Levels {
		if e.Name == "" {
			return nil, fmt.Errorf("levels: %s: entry %d has no name", path, i)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("levels: %s: %q has invalid size %dx%d", path, e.Name, e.Width, e.Height)
		}
		if e.Generate != nil {
			if _, err := corridorStyle(e.Generate.Corridors); err != nil {
				return nil, fmt.Errorf("levels: %s: %q: %w", path, e.Name, err)
			}
		}
	}
	return idx.Levels, nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Version counts successful loads of the index.
func (c *Catalog) Version() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Entry returns level i, wrapping round the list.
func (c *Catalog) Entry(i int) Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.entries)
	return c.entries[((i%n)+n)%n]
}

// Load builds a fresh grid for level i and locates its spawn tiles. Every
// call returns a new grid, so a replayed level starts full of food again.
func (c *Catalog) Load(i int) (*gamemap.GameMap, gamemap.Spawns, error) {
	e := c.Entry(i)
	var (
		gmap *gamemap.GameMap
		err  error
	)
	if e.Generate != nil {
		gmap, err = generateLevel(e)
	} else {
		gmap, err = c.readLevel(e)
	}
	if err != nil {
		return nil, gamemap.Spawns{}, fmt.Errorf("level %q: %w", e.Name, err)
	}
	spawns, err := gmap.Spawns()
	if err != nil {
		return nil, gamemap.Spawns{}, fmt.Errorf("level %q: %w", e.Name, err)
	}
	return gmap, spawns, nil
}

func (c *Catalog) readLevel(e Entry) (*gamemap.GameMap, error) {
	data, err := fs.ReadFile(c.fsys, e.Name)
	if err != nil {
		return nil, err
	}
	return gamemap.Parse(bytes.NewReader(data), e.Width, e.Height)
}

func generateLevel(e Entry) (*gamemap.GameMap, error) {
	cfg := generate.DefaultConfig(e.Width, e.Height, e.Generate.Seed)
	style, err := corridorStyle(e.Generate.Corridors)
	if err != nil {
		return nil, err
	}
	cfg.CorridorStyle = style
	if e.Generate.BellEvery > 0 {
		cfg.BellEvery = e.Generate.BellEvery
	}
	return generate.Generate(cfg)
}

func corridorStyle(name string) (generate.CorridorStyle, error) {
	switch strings.ToLower(name) {
	case "", "l":
		return generate.CorridorLShaped, nil
	case "z":
		return generate.CorridorZShaped, nil
	case "straight":
		return generate.CorridorStraight, nil
	}
	return 0, fmt.Errorf("unknown corridor style %q", name)
}
