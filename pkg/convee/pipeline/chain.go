package pipeline

import (
	"context"

	"github.com/ib-77/convee/pkg/convee/engine"
)

// Unit is a nested step whose types are known to the compiler.
type Unit[I, O any] interface {
	engine.Process
	Run(ctx context.Context, in I, opts ...engine.RunOption) (O, error)
}

// Chain collects steps whose adjacency is checked at compile time.
type Chain[I, O any] struct {
	steps []Step
}

// Start begins a chain with a nested engine or pipeline.
func Start[I, O any](u Unit[I, O]) Chain[I, O] {
	return Chain[I, O]{steps: []Step{u}}
}

// StartFunc begins a chain with a function step.
func StartFunc[I, O any](fn StepFunc[I, O]) Chain[I, O] {
	return Chain[I, O]{steps: []Step{Func(fn)}}
}

// Then appends a nested engine consuming the chain's output.
func Then[I, M, O any](c Chain[I, M], u Unit[M, O]) Chain[I, O] {
	return Chain[I, O]{steps: appendStep(c.steps, u)}
}

// ThenFunc appends a function step consuming the chain's output.
func ThenFunc[I, M, O any](c Chain[I, M], fn StepFunc[M, O]) Chain[I, O] {
	return Chain[I, O]{steps: appendStep(c.steps, Func(fn))}
}

// Store appends a StoreMetadata connector for the chain's current output.
func (c Chain[I, O]) Store(key string) Chain[I, O] {
	return Chain[I, O]{steps: appendStep(c.steps, StoreMetadata[O](key))}
}

func (c Chain[I, O]) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Build creates the pipeline.
func (c Chain[I, O]) Build(opts Options) (*Pipeline[I, O], error) {
	return New[I, O](c.steps, opts)
}

func appendStep(steps []Step, s Step) []Step {
	out := make([]Step, 0, len(steps)+1)
	out = append(out, steps...)
	return append(out, s)
}
