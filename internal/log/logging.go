// Package log builds the slog.Logger shared by every bindgen command.
//
// Console output is split by level: errors go to stderr and everything else
// to stdout, so a CI job can keep the per-file summary apart from failures.
// A log file, when configured, receives every record in addition.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below Debug. Generators log the member counts of every
// emitted class at this level.
const LevelTrace slog.Level = -8

var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a --log.level value to a slog level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Handler routes error records to errs and all others to out. Every record
// is also passed to the file handlers.
type Handler struct {
	out   slog.Handler
	errs  slog.Handler
	files []slog.Handler
}

func (h *Handler) targets(level slog.Level) []slog.Handler {
	console := h.out
	if level >= slog.LevelError {
		console = h.errs
	}
	return append([]slog.Handler{console}, h.files...)
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range h.targets(level) {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, t := range h.targets(r.Level) {
		if !t.Enabled(ctx, r.Level) {
			continue
		}
		if err := t.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return h.derive(func(x slog.Handler) slog.Handler { return x.WithGroup(name) })
}

func (h *Handler) derive(f func(slog.Handler) slog.Handler) *Handler {
	out := &Handler{out: f(h.out), errs: f(h.errs)}
	for _, fh := range h.files {
		out.files = append(out.files, f(fh))
	}
	return out
}

func newHandler(w io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "text", "":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// SetupLogger builds the logger from the --log.level, --log.file and
// --log.format flags. The returned closers release the log file.
func SetupLogger(level, file, format string) (*slog.Logger, []io.Closer, error) {
	return setup(os.Stdout, os.Stderr, level, file, format)
}

func setup(stdout, stderr io.Writer, level, file, format string) (*slog.Logger, []io.Closer, error) {
	lvl := ParseLevel(level)
	out, err := newHandler(stdout, format, lvl)
	if err != nil {
		return nil, nil, err
	}
	errs, _ := newHandler(stderr, format, lvl)
	h := &Handler{out: out, errs: errs}

	var closers []io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closers = append(closers, f)
		fh, _ := newHandler(f, format, lvl)
		h.files = append(h.files, fh)
	}
	return slog.New(h), closers, nil
}

// ForEngine scopes logger to one engine's generation run.
func ForEngine(logger *slog.Logger, engine string) *slog.Logger {
	return logger.With("engine", engine)
}

// Trace logs msg at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}
