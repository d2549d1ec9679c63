package plugin

import (
	"context"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

type InputFunc[T any] func(ctx context.Context, in T, md *metadata.Helper) (T, error)

type OutputFunc[T any] func(ctx context.Context, out T, md *metadata.Helper) (T, error)

type ErrorFunc[T any] func(ctx context.Context, err *failure.Error, md *metadata.Helper) convee.Result[T]

// Hooks lists the functions a Belt is built from. Any non-empty subset is valid.
type Hooks[I, O any] struct {
	Input  InputFunc[I]
	Output OutputFunc[O]
	Error  ErrorFunc[O]
}

// Belt is a plugin assembled from plain functions.
type Belt[I, O any] struct {
	name  string
	hooks Hooks[I, O]
	caps  Capability
}

func New[I, O any](name string, hooks Hooks[I, O]) (*Belt[I, O], error) {
	if name == "" {
		return nil, ErrNoName
	}

	var caps Capability
	if hooks.Input != nil {
		caps |= Input
	}
	if hooks.Output != nil {
		caps |= Output
	}
	if hooks.Error != nil {
		caps |= Error
	}
	if caps == 0 {
		return nil, ErrNoHooks
	}

	return &Belt[I, O]{name: name, hooks: hooks, caps: caps}, nil
}

// OnInput builds an input-only plugin.
func OnInput[T any](name string, fn InputFunc[T]) (*Belt[T, T], error) {
	return New(name, Hooks[T, T]{Input: fn})
}

// OnOutput builds an output-only plugin.
func OnOutput[T any](name string, fn OutputFunc[T]) (*Belt[T, T], error) {
	return New(name, Hooks[T, T]{Output: fn})
}

// OnError builds an error-only plugin for engines producing T.
func OnError[T any](name string, fn ErrorFunc[T]) (*Belt[T, T], error) {
	return New(name, Hooks[T, T]{Error: fn})
}

func (b *Belt[I, O]) Name() string {
	return b.name
}

func (b *Belt[I, O]) Capabilities() Capability {
	return b.caps
}

func (b *Belt[I, O]) ProcessInput(ctx context.Context, in I, md *metadata.Helper) (I, error) {
	if b.hooks.Input == nil {
		return in, nil
	}
	return b.hooks.Input(ctx, in, md)
}

func (b *Belt[I, O]) ProcessOutput(ctx context.Context, out O, md *metadata.Helper) (O, error) {
	if b.hooks.Output == nil {
		return out, nil
	}
	return b.hooks.Output(ctx, out, md)
}

func (b *Belt[I, O]) ProcessError(ctx context.Context, err *failure.Error, md *metadata.Helper) convee.Result[O] {
	if b.hooks.Error == nil {
		return convee.Fail[O](err)
	}
	return b.hooks.Error(ctx, err, md)
}
