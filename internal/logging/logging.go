// Package logging constructs the process logger. The minimum level is
// process-wide mutable state: set once at startup, adjustable at runtime via
// SetLevel, read on every log call through the shared slog.LevelVar.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var levelVar = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelInfo)
	return v
}()

// SetLevel adjusts the process-wide minimum log level.
func SetLevel(l slog.Level) {
	levelVar.Set(l)
}

// Level returns the current process-wide minimum log level.
func Level() slog.Level {
	return levelVar.Level()
}

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string // "text" (default) or "json"
	Output io.Writer
}

// New constructs a slog logger bound to the shared level.
func New(opts Options) (*slog.Logger, error) {
	SetLevel(ParseLevel(opts.Level))

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "text"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: levelVar})
	case "text":
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: levelVar})
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}
