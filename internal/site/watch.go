package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/metrics"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// LoadFunc builds a fresh snapshot from disk.
type LoadFunc func() (*Site, error)

// Reloader rebuilds the snapshot in a Store when its sources change. A
// failed rebuild leaves the previous snapshot in service.
type Reloader struct {
	store    *Store
	load     LoadFunc
	log      logger.Logger
	metrics  *metrics.Metrics
	debounce time.Duration

	mu sync.Mutex
}

// NewReloader creates a reloader for store. m may be nil.
func NewReloader(store *Store, load LoadFunc, log logger.Logger, m *metrics.Metrics) *Reloader {
	r := &Reloader{store: store, load: load, log: log, metrics: m, debounce: DefaultDebounce}
	r.record(store.Current())
	return r
}

// WithDebounce overrides the settle delay.
func (r *Reloader) WithDebounce(d time.Duration) *Reloader {
	r.debounce = d
	return r
}

// Reload rebuilds the snapshot now.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load()
	if err != nil {
		r.count("failed")
		r.log.Error("Reload failed, keeping previous snapshot", logger.Error(err))
		return err
	}
	r.store.Replace(s)
	r.record(s)
	r.count("ok")
	r.log.Info("Snapshot reloaded",
		logger.Int("projects", s.Projects.Len()),
		logger.Int("posts", s.Posts.Len()),
	)
	return nil
}

// Watch reloads after changes under dirs until ctx ends. Missing
// directories are skipped; directories created later are picked up.
func (r *Reloader) Watch(ctx context.Context, dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			r.log.Warn("Directory not found, not watching", logger.String("dir", dir))
			continue
		}
		r.addTree(watcher, dir)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.log.Debug("Change detected",
				logger.String("path", event.Name),
				logger.String("op", event.Op.String()),
			)
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				r.addTree(watcher, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = r.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("Watcher error", logger.Error(err))
		}
	}
}

// addTree watches root and every directory below it.
func (r *Reloader) addTree(watcher *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.log.Warn("Error walking directory", logger.String("path", path), logger.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				r.log.Warn("Failed to watch directory", logger.String("path", path), logger.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		r.log.Warn("Error watching tree", logger.String("root", root), logger.Error(err))
	}
}

func (r *Reloader) record(s *Site) {
	if r.metrics == nil || s == nil {
		return
	}
	r.metrics.ContentEntries.WithLabelValues("projects").Set(float64(s.Projects.Len()))
	r.metrics.ContentEntries.WithLabelValues("posts").Set(float64(s.Posts.Len()))
	r.metrics.ContentEntries.WithLabelValues("services").Set(float64(len(s.Services)))
}

func (r *Reloader) count(result string) {
	if r.metrics != nil {
		r.metrics.Reloads.WithLabelValues(result).Inc()
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
