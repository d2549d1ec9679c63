// Package logging sets up slog for hosts that run convee engines. Every
// record carries the host name, and loggers handed to engines carry a
// component.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var ErrFormat = errors.New("logging: format must be text or json")

// Host is the logger of one process running engines.
type Host struct {
	name string
	base *slog.Logger
}

// Setup builds the handler from a level and format as written in a config
// file, installs it as the slog default and returns the host. A nil w
// writes to os.Stderr.
func Setup(name, level, format string, w io.Writer) (*Host, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w, got %q", ErrFormat, format)
	}

	base := slog.New(handler).With(slog.String("host", name))
	slog.SetDefault(base)
	return &Host{name: name, base: base}, nil
}

func (h *Host) Name() string {
	return h.name
}

// Logger returns the host's own logger, tagged with the host name as its
// component.
func (h *Host) Logger() *slog.Logger {
	return h.Component(h.name)
}

// Component returns a logger for one part of the host, such as an engine
// or a pipeline.
func (h *Host) Component(component string) *slog.Logger {
	return h.base.With(slog.String("component", component))
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
