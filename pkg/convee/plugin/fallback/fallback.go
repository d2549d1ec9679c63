// Package fallback provides an error plugin that recovers a failed run
// with a replacement value.
package fallback

import (
	"context"
	"errors"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

// Recover computes the replacement for a failed run.
type Recover[T any] func(ctx context.Context, err *failure.Error, md *metadata.Helper) (T, error)

// Fallback recovers every error, or only those matching one of its
// targets when targets are given. Errors it does not recover are forwarded
// unchanged.
type Fallback[T any] struct {
	name    string
	recover Recover[T]
	targets []error
}

var _ plugin.ErrorProcessor[int] = (*Fallback[int])(nil)

// Value recovers with a fixed value.
func Value[T any](name string, v T, targets ...error) (*Fallback[T], error) {
	return Func(name, func(context.Context, *failure.Error, *metadata.Helper) (T, error) {
		return v, nil
	}, targets...)
}

// Func recovers with whatever fn returns. If fn itself fails, its error
// replaces the current one.
func Func[T any](name string, fn Recover[T], targets ...error) (*Fallback[T], error) {
	if name == "" {
		return nil, plugin.ErrNoName
	}
	if fn == nil {
		return nil, plugin.ErrNoHooks
	}
	return &Fallback[T]{name: name, recover: fn, targets: targets}, nil
}

func (f *Fallback[T]) Name() string {
	return f.name
}

func (f *Fallback[T]) ProcessError(ctx context.Context, err *failure.Error, md *metadata.Helper) convee.Result[T] {
	if !f.matches(err) {
		return convee.Fail[T](nil)
	}

	v, rerr := f.recover(ctx, err, md)
	if rerr != nil {
		return convee.Fail[T](rerr)
	}
	return convee.Success(v)
}

func (f *Fallback[T]) matches(err error) bool {
	if len(f.targets) == 0 {
		return true
	}
	for _, target := range f.targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
