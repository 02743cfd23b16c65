// Package watch re-runs generation when a source image changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicons/internal/config"
	"github.com/jmylchreest/favicons/internal/icons"
	"github.com/jmylchreest/favicons/internal/image"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Filter decides which paths belong to a watched source.
type Filter struct {
	patterns []string
	ignored  map[string]bool
}

// NewFilter builds a filter for the groups' source patterns. Files the run
// writes itself (icons in each dest and the HTML document) never match, so a
// source pattern that covers the dest cannot trigger a loop.
func NewFilter(groups []config.Group, opts config.Options) *Filter {
	f := &Filter{ignored: make(map[string]bool)}

	for _, g := range groups {
		for _, p := range g.Sources {
			f.patterns = append(f.patterns, filepath.Clean(p))
		}
		for _, v := range icons.Catalog(opts) {
			f.ignored[filepath.Join(g.Dest, v.Filename)] = true
		}
	}
	if opts.HTML != "" {
		f.ignored[filepath.Clean(opts.HTML)] = true
	}

	return f
}

// Match reports whether path is a source or a sized sibling of one.
func (f *Filter) Match(path string) bool {
	path = filepath.Clean(path)
	if f.ignored[path] {
		return false
	}
	if f.matchPattern(path) {
		return true
	}
	if primary, ok := image.PrimaryOf(path); ok {
		return f.matchPattern(primary)
	}
	return false
}

func (f *Filter) matchPattern(path string) bool {
	for _, p := range f.patterns {
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Watcher runs a callback whenever a watched source settles after a change.
type Watcher struct {
	filter   *Filter
	dirs     []string
	debounce time.Duration
	run      func(ctx context.Context) error
	logger   hclog.Logger

	// ready is closed once every directory is being watched.
	ready chan struct{}
}

// New creates a Watcher over the directories of the groups' sources.
func New(groups []config.Group, opts config.Options, run func(ctx context.Context) error, logger hclog.Logger) *Watcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Watcher{
		filter:   NewFilter(groups, opts),
		dirs:     sourceDirs(groups),
		debounce: DefaultDebounce,
		run:      run,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled or the callback fails. Generations run
// one at a time on the calling goroutine; events arriving meanwhile are
// coalesced into the next run.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.dirs) == 0 {
		return fmt.Errorf("no source directories to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Info("watching", "dir", dir)
	}
	close(w.ready)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.filter.Match(event.Name) {
				continue
			}
			w.logger.Debug("source changed", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			w.logger.Info("regenerating")
			if err := w.run(ctx); err != nil {
				return err
			}
		}
	}
}

// sourceDirs returns the distinct directories holding the groups' sources.
func sourceDirs(groups []config.Group) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, g := range groups {
		for _, p := range g.Sources {
			if dir := filepath.Dir(p); !strings.ContainsAny(dir, "*?[") {
				add(dir)
			}
		}
		sources, err := image.ExpandSources(g.Sources)
		if err != nil {
			continue
		}
		for _, s := range sources {
			add(filepath.Dir(s))
		}
	}

	return dirs
}
