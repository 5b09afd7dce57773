// Package watch reloads the structure when its source files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/frameview/internal/logger"
	"github.com/Faultbox/frameview/internal/structure"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// LoadFunc produces a fresh structure from the watched files.
type LoadFunc func() (*structure.FrameStructure, error)

// Result is the outcome of one reload.
type Result struct {
	Structure *structure.FrameStructure
	Err       error
}

// Reloader watches a set of files and reloads on change. Results are
// delivered on Updates; only the most recent undelivered result is kept.
type Reloader struct {
	files    map[string]bool
	load     LoadFunc
	debounce time.Duration
	watcher  *fsnotify.Watcher
	updates  chan Result
	log      *zap.Logger
}

// New watches the directories holding paths. Directories rather than
// files are watched so atomic-rename saves are still seen.
func New(load LoadFunc, debounce time.Duration, paths ...string) (*Reloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	r := &Reloader{
		files:    make(map[string]bool, len(paths)),
		load:     load,
		debounce: debounce,
		watcher:  w,
		updates:  make(chan Result, 1),
		log:      logger.Named("watch"),
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		r.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return r, nil
}

// Updates returns the channel reload results are delivered on.
func (r *Reloader) Updates() <-chan Result {
	return r.updates
}

// Run processes file events until ctx is done or the watcher closes.
func (r *Reloader) Run(ctx context.Context) error {
	timer := time.NewTimer(r.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !r.relevant(event) {
				continue
			}
			r.log.Debug("structure file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(r.debounce)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			s, err := r.load()
			if err != nil {
				r.log.Warn("reload failed, keeping current structure", zap.Error(err))
			} else {
				r.log.Info("structure reloaded",
					zap.Int("nodes", s.NodeCount()),
					zap.Int("edges", s.EdgeCount()),
				)
			}
			r.publish(Result{Structure: s, Err: err})
		}
	}
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}

func (r *Reloader) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return r.files[abs]
}

// publish replaces any undelivered result with res.
func (r *Reloader) publish(res Result) {
	for {
		select {
		case r.updates <- res:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}
