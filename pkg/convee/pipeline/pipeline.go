package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var (
	ErrNoSteps        = errors.New("pipeline: at least one step is required")
	ErrMissingName    = errors.New("pipeline: name is required")
	ErrInvalidChain   = errors.New("pipeline: steps do not chain")
	ErrUnknownStep    = errors.New("pipeline: unknown step")
	ErrStepInput      = errors.New("pipeline: step input has the wrong type")
	ErrStepOutput     = errors.New("pipeline: last step output has the wrong type")
	ErrTargetNotFound = errors.New("pipeline: target not found")
)

type Options struct {
	Name    string
	ID      string
	Plugins []plugin.Plugin
	Logger  *slog.Logger
}

// Pipeline is an engine whose core runs its steps in order. Its own belts
// wrap the whole sequence; nested engines keep their own belts and share
// the run's metadata helper.
type Pipeline[I, O any] struct {
	*engine.Engine[I, O]

	steps []Step
	log   *slog.Logger
}

func New[I, O any](steps []Step, opts Options) (*Pipeline[I, O], error) {
	if opts.Name == "" {
		return nil, ErrMissingName
	}
	if err := validateChain(convee.TypeOf[I](), convee.TypeOf[O](), steps); err != nil {
		return nil, err
	}

	p := &Pipeline[I, O]{
		steps: append([]Step(nil), steps...),
		log:   opts.Logger,
	}
	if p.log == nil {
		p.log = slog.Default()
	}

	e, err := engine.New[I, O](p.execute, engine.Options{
		Name:    opts.Name,
		ID:      opts.ID,
		Kind:    convee.KindPipeline,
		Plugins: opts.Plugins,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	p.Engine = e
	p.log = p.log.With(slog.String("component", "pipeline"),
		slog.String("pipeline", e.Name()), slog.String("pipeline_id", e.ID()))

	return p, nil
}

// Steps returns a copy of the fixed step list.
func (p *Pipeline[I, O]) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Targets lists the names AddPluginTo and RemovePluginFrom accept: the
// pipeline itself followed by its nested engines. Function steps have no
// name and cannot be targeted.
func (p *Pipeline[I, O]) Targets() []string {
	names := []string{p.Name()}
	for _, s := range p.steps {
		if name := stepName(s); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AddPluginTo registers pl on the pipeline's own belt when target is the
// pipeline name, or on the first nested engine called target.
func (p *Pipeline[I, O]) AddPluginTo(pl plugin.Plugin, target string) error {
	if target == p.Name() {
		return p.AddPlugin(pl)
	}
	proc, ok := p.find(target)
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrTargetNotFound, target, p.Name())
	}
	return proc.AddPlugin(pl)
}

// RemovePluginFrom unregisters pluginName from target. Removing a plugin
// that is not registered is a no-op; an unknown target is an error.
func (p *Pipeline[I, O]) RemovePluginFrom(target, pluginName string) error {
	if target == p.Name() {
		p.RemovePlugin(pluginName)
		return nil
	}
	proc, ok := p.find(target)
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrTargetNotFound, target, p.Name())
	}
	proc.RemovePlugin(pluginName)
	return nil
}

// RunCustom runs the pipeline with steps in place of its fixed steps for
// this call only. The pipeline's belts still apply. Concurrent calls with
// different step lists do not interfere.
func (p *Pipeline[I, O]) RunCustom(ctx context.Context, in I, steps []Step,
	opts ...engine.RunOption) (O, error) {

	if err := validateChain(convee.TypeOf[I](), convee.TypeOf[O](), steps); err != nil {
		var zero O
		return zero, err
	}
	custom := append([]Step(nil), steps...)
	return p.Run(withSteps(ctx, p, custom), in, opts...)
}

func (p *Pipeline[I, O]) find(name string) (engine.Process, bool) {
	for _, s := range p.steps {
		if proc, ok := s.(engine.Process); ok && proc.Name() == name {
			return proc, true
		}
	}
	return nil, false
}

// execute is the pipeline's core transform.
func (p *Pipeline[I, O]) execute(ctx context.Context, in I, md *metadata.Helper) (O, error) {
	var zero O

	steps := p.steps
	if custom, ok := stepsFrom(ctx, p); ok {
		steps = custom
	}

	var current any = in
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		p.log.DebugContext(ctx, "step", slog.Int("index", i), slog.String("step", stepName(step)),
			slog.String("item_id", md.ItemID()))

		out, err := runStep(ctx, step, current, md)
		if err != nil {
			return zero, err
		}
		current = out
	}

	out, ok := convee.As[O](current)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", ErrStepOutput, convee.TypeOf[O](), current)
	}
	return out, nil
}
