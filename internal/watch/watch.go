// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch re-reconciles a state file whenever it changes on disk, so
// a hand edit is repaired as soon as the editor saves it.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sirseerhq/runstate/internal/logging"
	"github.com/sirseerhq/runstate/internal/state"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Reconciler repairs the watched file. *state.Store implements it.
type Reconciler interface {
	Path() string
	Reconcile() (state.Report, error)
}

// Watcher monitors a state file and reconciles it after each change.
type Watcher struct {
	target   Reconciler
	path     string
	logger   *slog.Logger
	debounce time.Duration
	onReport func(state.Report)
	ready    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnReport registers a callback invoked with the report of every pass.
func OnReport(fn func(state.Report)) Option {
	return func(w *Watcher) {
		w.onReport = fn
	}
}

// New creates a watcher for the file managed by target.
func New(target Reconciler, opts ...Option) *Watcher {
	w := &Watcher{
		target:   target,
		path:     target.Path(),
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the watcher is receiving events.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is cancelled. It returns nil on cancellation and
// the reconciliation error if the file becomes unusable.
func (w *Watcher) Run(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve state path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic rewrites replace the file's inode.
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch state directory %s: %w", dir, err)
	}

	w.logger.Info("Watching state file", logging.Path(absPath))
	close(w.ready)

	name := filepath.Base(absPath)

	// pending fires once writes have settled; nil while idle.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching state file", logging.Path(absPath))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("State file change detected", logging.Path(event.Name), slog.String("op", event.Op.String()))
				pending = time.After(w.debounce)
			case event.Has(fsnotify.Remove):
				w.logger.Warn("State file removed, it will be recreated", logging.Path(event.Name))
				pending = time.After(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("State watcher error", logging.Error(err))

		case <-pending:
			pending = nil
			report, err := w.target.Reconcile()
			if err != nil {
				return err
			}
			if report.Changed() {
				w.logger.Info("State file reconciled", logging.Path(absPath), slog.String("summary", report.Summary()))
			}
			if w.onReport != nil {
				w.onReport(report)
			}
		}
	}
}
