package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watch struct {
	Output        string `arg:"" optional:"" help:"Output directory for the generated sources" default:"." type:"path"`
	GenerateFlags `embed:""`
	Debounce      time.Duration `help:"Quiet period after a change before regenerating" default:"200ms" env:"BINDGEN_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Watch(ctx, logger)
}

// Watch regenerates once, then again after every change to the schema or
// overrides file, until ctx is done. Generation failures are logged and
// do not stop the watch.
func (w *Watch) Watch(ctx context.Context, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Parent directories are watched; events are filtered to the input files.
	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range []string{w.Schema, w.Overrides} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	regenerate := func() {
		if err := w.generate(logger, w.Output, false); err != nil {
			logger.Error("Generation failed", "error", err)
			return
		}
		logger.Info("Watching for changes", "schema", w.Schema, "overrides", w.Overrides)
	}
	regenerate()

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Input changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("File watcher overflowed; regenerating")
				timer.Reset(w.Debounce)
				continue
			}
			logger.Error("File watcher error", "error", err)
		case <-timer.C:
			regenerate()
		}
	}
}
