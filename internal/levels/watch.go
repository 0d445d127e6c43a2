package levels

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeat events for one file inside this window.
const debounce = 100 * time.Millisecond

// Watch reloads the index whenever a level or index file under dir changes,
// until ctx is cancelled. A level file is read at each Load, so edits to
// existing levels show up on the next level start even without a reload.
func (c *Catalog) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	c.logger.Info("watching levels", "dir", dir)

	last := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isLevelFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			if err := c.Reload(); err != nil {
				c.logger.Warn("level reload failed", "file", event.Name, "err", err)
				continue
			}
			c.logger.Info("levels reloaded", "file", event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("level watcher error", "err", err)
		}
	}
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".txt":
		return true
	}
	return false
}
