package plugin

import (
	"context"
	"errors"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

var (
	ErrNoName       = errors.New("plugin: name is required")
	ErrNoHooks      = errors.New("plugin: at least one hook is required")
	ErrIncompatible = errors.New("plugin: serves none of the engine belts")
	ErrDuplicate    = errors.New("plugin: name already registered")
)

// Plugin is anything with a name; what it does is decided by which of the
// processor interfaces below it implements.
type Plugin interface {
	Name() string
}

// InputProcessor runs before the core transform and may replace its input.
type InputProcessor[T any] interface {
	Plugin
	ProcessInput(ctx context.Context, in T, md *metadata.Helper) (T, error)
}

// OutputProcessor runs after the core transform (or after a recovery) and
// may replace the output.
type OutputProcessor[T any] interface {
	Plugin
	ProcessOutput(ctx context.Context, out T, md *metadata.Helper) (T, error)
}

// ErrorProcessor sees a failed core transform. Returning convee.Success
// recovers the run with that value; returning convee.Fail hands the error
// (or a replacement) to the next error processor.
type ErrorProcessor[T any] interface {
	Plugin
	ProcessError(ctx context.Context, err *failure.Error, md *metadata.Helper) convee.Result[T]
}

type Capability uint8

const (
	Input Capability = 1 << iota
	Output
	Error
)

func (c Capability) Has(o Capability) bool {
	return c&o == o
}

// Capable narrows the hooks a plugin offers below the methods it has.
// Function-backed plugins implement every method but only serve the hooks
// they were built with.
type Capable interface {
	Capabilities() Capability
}

func allows(p Plugin, c Capability) bool {
	if cp, ok := p.(Capable); ok {
		return cp.Capabilities().Has(c)
	}
	return true
}

func AsInput[T any](p Plugin) (InputProcessor[T], bool) {
	if convee.IsNil(p) || !allows(p, Input) {
		return nil, false
	}
	ip, ok := p.(InputProcessor[T])
	return ip, ok
}

func AsOutput[T any](p Plugin) (OutputProcessor[T], bool) {
	if convee.IsNil(p) || !allows(p, Output) {
		return nil, false
	}
	op, ok := p.(OutputProcessor[T])
	return op, ok
}

func AsError[T any](p Plugin) (ErrorProcessor[T], bool) {
	if convee.IsNil(p) || !allows(p, Error) {
		return nil, false
	}
	ep, ok := p.(ErrorProcessor[T])
	return ep, ok
}

// Serves reports whether p applies to at least one belt of an engine that
// turns I into O.
func Serves[I, O any](p Plugin) bool {
	if _, ok := AsInput[I](p); ok {
		return true
	}
	if _, ok := AsOutput[O](p); ok {
		return true
	}
	_, ok := AsError[O](p)
	return ok
}
