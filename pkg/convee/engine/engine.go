package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var (
	ErrNilTransform = errors.New("engine: transform is required")
	ErrInputType    = errors.New("engine: input has the wrong type")
	ErrInvalidKind  = errors.New("engine: unknown engine kind")
)

// Transform is the core function an engine wraps.
type Transform[I, O any] func(ctx context.Context, in I, md *metadata.Helper) (O, error)

// Process is the untyped face of an engine, used to nest engines inside
// pipelines.
type Process interface {
	Name() string
	ID() string
	Kind() convee.Kind
	In() reflect.Type
	Out() reflect.Type
	// Execute runs the engine sharing md with the caller.
	Execute(ctx context.Context, in any, md *metadata.Helper) (any, error)
	AddPlugin(p plugin.Plugin) error
	RemovePlugin(name string) bool
}

type Engine[I, O any] struct {
	name      string
	id        string
	kind      convee.Kind
	transform Transform[I, O]
	plugins   *plugin.Registry
	log       *slog.Logger
}

func New[I, O any](transform Transform[I, O], opts Options) (*Engine[I, O], error) {
	if transform == nil {
		return nil, ErrNilTransform
	}

	e := &Engine[I, O]{
		name:      opts.Name,
		id:        opts.ID,
		kind:      opts.Kind,
		transform: transform,
		plugins:   plugin.NewRegistry(),
		log:       opts.Logger,
	}
	if e.name == "" {
		e.name = DefaultName
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	if e.kind == "" {
		e.kind = convee.KindProcess
	}
	if !e.kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, e.kind)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.log = e.log.With(slog.String("component", "engine"),
		slog.String("engine", e.name), slog.String("engine_id", e.id))

	for _, p := range opts.Plugins {
		if err := e.AddPlugin(p); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine[I, O]) Name() string {
	return e.name
}

func (e *Engine[I, O]) ID() string {
	return e.id
}

func (e *Engine[I, O]) Kind() convee.Kind {
	return e.kind
}

func (e *Engine[I, O]) In() reflect.Type {
	return convee.TypeOf[I]()
}

func (e *Engine[I, O]) Out() reflect.Type {
	return convee.TypeOf[O]()
}

// AddPlugin registers p on this engine's belts. The plugin must serve at
// least one of them.
func (e *Engine[I, O]) AddPlugin(p plugin.Plugin) error {
	if convee.IsNil(p) {
		return fmt.Errorf("%w: nil plugin on %s", plugin.ErrIncompatible, e.name)
	}
	if !plugin.Serves[I, O](p) {
		return fmt.Errorf("%w: %q on %s", plugin.ErrIncompatible, p.Name(), e.name)
	}
	return e.plugins.Add(p)
}

// RemovePlugin unregisters the plugin called name. Unknown names are a no-op.
func (e *Engine[I, O]) RemovePlugin(name string) bool {
	return e.plugins.Remove(name)
}

// Plugins lists the registered plugin names in execution order.
func (e *Engine[I, O]) Plugins() []string {
	return e.plugins.Names()
}

// Run pushes in through the input belt, the core transform and the output
// belt. A failing core is offered to the error belt; the first error plugin
// that recovers supplies the output, which still passes the output belt.
//
// Errors returned by input or output plugins come back unchanged. Errors
// from the core come back as *failure.Error with one more stack frame.
func (e *Engine[I, O]) Run(ctx context.Context, in I, opts ...RunOption) (O, error) {
	var zero O

	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, p := range cfg.plugins {
		if convee.IsNil(p) || !plugin.Serves[I, O](p) {
			return zero, fmt.Errorf("%w: single-use plugin on %s", plugin.ErrIncompatible, e.name)
		}
	}

	itemID := cfg.itemID
	if itemID == "" && cfg.md != nil {
		itemID = cfg.md.ItemID()
	}
	if itemID == "" {
		itemID = uuid.NewString()
	}

	md := cfg.md
	if md == nil {
		md = metadata.New(itemID)
	}

	belt := e.plugins.Snapshot(cfg.plugins...)
	e.log.DebugContext(ctx, "run", slog.String("item_id", itemID), slog.Int("plugins", len(belt)))

	input, err := e.runInputBelt(ctx, in, md, belt)
	if err != nil {
		return zero, err
	}

	out, err := e.runCore(ctx, input, md)
	if err != nil {
		res := e.runErrorBelt(ctx, failure.Ensure(err), md, belt)
		if !res.IsSuccess() {
			fe := failure.Ensure(res.Err())
			fe.Enrich(failure.Frame{
				Source:   e.id,
				Kind:     e.kind,
				ItemID:   itemID,
				DataKeys: md.Keys(),
			})
			e.log.DebugContext(ctx, "error propagated", slog.String("item_id", itemID),
				slog.Int("depth", fe.Depth()), slog.String("error", fe.Error()))
			return zero, fe
		}
		e.log.DebugContext(ctx, "error recovered", slog.String("item_id", itemID))
		out = res.Result()
	}

	return e.runOutputBelt(ctx, out, md, belt)
}

// Execute runs the engine for a pipeline step, sharing md.
func (e *Engine[I, O]) Execute(ctx context.Context, in any, md *metadata.Helper) (any, error) {
	v, ok := convee.As[I](in)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects %s, got %T", ErrInputType, e.name, e.In(), in)
	}

	out, err := e.Run(ctx, v, WithMetadata(md))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine[I, O]) runCore(ctx context.Context, in I, md *metadata.Helper) (O, error) {
	if err := ctx.Err(); err != nil {
		var zero O
		return zero, err
	}
	return e.transform(ctx, in, md)
}
