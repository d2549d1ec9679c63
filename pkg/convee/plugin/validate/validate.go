// Package validate provides an input plugin that rejects values failing
// one or more checks before the core transform runs.
package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var ErrInvalid = errors.New("validate: invalid input")

// Check reports whether in is valid, with a message when it is not.
type Check[T any] func(ctx context.Context, in T) (valid bool, errMsg string)

// Validator runs its checks in order. By default the first failing check
// stops the run; with All set every check runs and the failures are
// joined.
type Validator[T any] struct {
	name   string
	checks []Check[T]
	all    bool
}

var _ plugin.InputProcessor[int] = (*Validator[int])(nil)

func New[T any](name string, checks ...Check[T]) (*Validator[T], error) {
	if name == "" {
		return nil, plugin.ErrNoName
	}
	if len(checks) == 0 {
		return nil, plugin.ErrNoHooks
	}
	return &Validator[T]{name: name, checks: checks}, nil
}

// All makes the validator report every failing check instead of the first.
func (v *Validator[T]) All() *Validator[T] {
	v.all = true
	return v
}

func (v *Validator[T]) Name() string {
	return v.name
}

func (v *Validator[T]) ProcessInput(ctx context.Context, in T, _ *metadata.Helper) (T, error) {
	var err error
	for _, check := range v.checks {
		valid, msg := check(ctx, in)
		if valid {
			continue
		}

		e := fmt.Errorf("%w: %s", ErrInvalid, msg)
		if !v.all {
			return in, e
		}
		err = errors.Join(append(convee.GetErrors(err), e)...)
	}

	if !convee.IsNil(err) {
		return in, err
	}
	return in, nil
}
