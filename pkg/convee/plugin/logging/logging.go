// Package logging provides a plugin that records every belt it passes
// through on a slog.Logger. It never changes values and never recovers.
package logging

import (
	"context"
	"log/slog"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

const DefaultName = "logging"

type Options struct {
	Name   string
	Logger *slog.Logger
	// Level is used for input and output records. Errors are always
	// logged at slog.LevelError.
	Level slog.Level
}

type Plugin[I, O any] struct {
	name  string
	log   *slog.Logger
	level slog.Level
}

func New[I, O any](opts Options) *Plugin[I, O] {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Plugin[I, O]{
		name:  name,
		log:   log.With(slog.String("component", "plugin"), slog.String("plugin", name)),
		level: opts.Level,
	}
}

func (p *Plugin[I, O]) Name() string {
	return p.name
}

func (p *Plugin[I, O]) ProcessInput(ctx context.Context, in I, md *metadata.Helper) (I, error) {
	p.log.Log(ctx, p.level, "input", slog.String("item_id", md.ItemID()), slog.Any("value", in))
	return in, nil
}

func (p *Plugin[I, O]) ProcessOutput(ctx context.Context, out O, md *metadata.Helper) (O, error) {
	p.log.Log(ctx, p.level, "output", slog.String("item_id", md.ItemID()), slog.Any("value", out))
	return out, nil
}

func (p *Plugin[I, O]) ProcessError(ctx context.Context, err *failure.Error, md *metadata.Helper) convee.Result[O] {
	p.log.ErrorContext(ctx, "error", slog.String("item_id", md.ItemID()),
		slog.Int("depth", err.Depth()), slog.Any("keys", md.Keys()), slog.String("error", err.Error()))
	return convee.Fail[O](nil)
}
