package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	"github.com/five82/vista/internal/templates"
)

const defaultReloadDebounce = 250 * time.Millisecond

// TemplateWatcher reloads a template file when it changes on disk and
// publishes the result on Templates. Editors that save through a rename are
// handled by watching the parent directory.
type TemplateWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	clock    clockwork.Clock
	debounce time.Duration
	logger   *slog.Logger
	out      chan *templates.Data

	mu      sync.Mutex
	pending clockwork.Timer
	closed  bool
}

// NewTemplateWatcher creates a watcher for path. A nil clock uses the real
// clock and a non-positive debounce uses the default.
func NewTemplateWatcher(path string, clock clockwork.Clock, debounce time.Duration, logger *slog.Logger) (*TemplateWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve template path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateWatcher{
		path:     abs,
		watcher:  fw,
		clock:    clock,
		debounce: debounce,
		logger:   logger.With("component", "template_watcher", "path", abs),
		out:      make(chan *templates.Data, 1),
	}, nil
}

// Templates delivers reloaded templates. Only the latest unread one is kept.
func (w *TemplateWatcher) Templates() <-chan *templates.Data { return w.out }

// Start watches the template's directory until ctx is cancelled or Close is
// called.
func (w *TemplateWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch template directory %s: %w", dir, err)
	}
	w.logger.Info("watching template")
	go w.watchLoop(ctx)
	return nil
}

// Close stops the watcher and any pending reload.
func (w *TemplateWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *TemplateWatcher) watchLoop(ctx context.Context) {
	defer func() { _ = w.Close() }()
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.logger.Debug("template change detected", "op", ev.Op.String())
				w.trigger()
			case ev.Has(fsnotify.Remove):
				w.logger.Warn("template file removed")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("template watcher error", "error", err)
		}
	}
}

// trigger restarts the debounce window.
func (w *TemplateWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.clock.AfterFunc(w.debounce, w.reload)
}

func (w *TemplateWatcher) reload() {
	d, err := templates.Load(w.path)
	if err != nil {
		w.logger.Error("template reload failed", "error", err)
		return
	}
	w.publish(d)
	w.logger.Info("template reloaded", "template", d.Name)
}

// publish replaces any template the UI has not consumed yet.
func (w *TemplateWatcher) publish(d *templates.Data) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case <-w.out:
	default:
	}
	w.out <- d
}
