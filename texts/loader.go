package texts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Loader reads host override tables from a JSON file and keeps them fresh.
// The filesystem is abstracted with afero so tests can load from memory;
// Watch uses fsnotify against the real filesystem.
type Loader struct {
	fs   afero.Fs
	path string
	base Table

	mu    sync.RWMutex
	table Table

	// OnReload, when set, receives the merged table after every
	// successful Load, including those triggered by Watch.
	OnReload func(Table)
}

// NewLoader creates a loader for a JSON override file layered on base.
func NewLoader(fs afero.Fs, path string, base Table) *Loader {
	return &Loader{
		fs:    fs,
		path:  path,
		base:  base,
		table: base,
	}
}

// Load reads and applies the override file. A missing or malformed file
// leaves the previous table in place and returns the error; the card keeps
// rendering with whatever was last valid.
func (l *Loader) Load() error {
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		return fmt.Errorf("reading text overrides %s: %w", l.path, err)
	}

	var overrides Table
	if err := json.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing text overrides %s: %w", l.path, err)
	}

	merged := Merge(l.base, overrides)
	l.mu.Lock()
	l.table = merged
	l.mu.Unlock()

	if l.OnReload != nil {
		l.OnReload(merged)
	}
	return nil
}

// Table returns the current merged table.
func (l *Loader) Table() Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table
}

// Watch reloads the override file whenever it changes on disk, until done
// is closed. Reload failures are logged and the previous table stays
// active.
func (l *Loader) Watch(done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating text override watcher: %w", err)
	}

	// Watch the directory rather than the file itself so editors that
	// replace the file (rename + create) keep triggering reloads.
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching text override dir: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(l.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := l.Load(); err != nil {
					slog.Warn("text override reload failed, keeping previous table", "error", err)
					continue
				}
				slog.Info("text overrides reloaded", "path", l.path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("text override watcher error", "error", err)
			}
		}
	}()
	return nil
}
