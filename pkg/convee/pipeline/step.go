package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

// Step is one element of a pipeline: a function built with Func or a
// connector, or a nested engine.Process (engine or pipeline).
type Step interface {
	In() reflect.Type
	Out() reflect.Type
}

// StepFunc is a plain function step.
type StepFunc[I, O any] func(ctx context.Context, in I, md *metadata.Helper) (O, error)

// caller is implemented by the function-backed steps of this package.
type caller interface {
	call(ctx context.Context, in any, md *metadata.Helper) (any, error)
}

type funcStep[I, O any] struct {
	fn StepFunc[I, O]
}

// Func turns fn into an unnamed step.
func Func[I, O any](fn StepFunc[I, O]) Step {
	return funcStep[I, O]{fn: fn}
}

func (s funcStep[I, O]) In() reflect.Type {
	return convee.TypeOf[I]()
}

func (s funcStep[I, O]) Out() reflect.Type {
	return convee.TypeOf[O]()
}

func (s funcStep[I, O]) call(ctx context.Context, in any, md *metadata.Helper) (any, error) {
	v, ok := convee.As[I](in)
	if !ok {
		return nil, fmt.Errorf("%w: function step expects %s, got %T", ErrStepInput, s.In(), in)
	}
	return s.fn(ctx, v, md)
}

// runStep executes one step sharing md. Nested engines receive md so that
// their plugins and the outer belts see one context.
func runStep(ctx context.Context, step Step, in any, md *metadata.Helper) (any, error) {
	switch s := step.(type) {
	case caller:
		return s.call(ctx, in, md)
	case engine.Process:
		if !s.Kind().Valid() {
			return nil, fmt.Errorf("%w: %s has kind %q", ErrUnknownStep, s.Name(), s.Kind())
		}
		return s.Execute(ctx, in, md)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownStep, step)
	}
}

func stepName(step Step) string {
	if p, ok := step.(engine.Process); ok {
		return p.Name()
	}
	return ""
}

// validateChain checks that in feeds the first step, each step feeds the
// next, and the last step feeds out.
func validateChain(in, out reflect.Type, steps []Step) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}
	for i, s := range steps {
		if convee.IsNil(s) {
			return fmt.Errorf("%w: step %d is nil", ErrUnknownStep, i)
		}
	}

	if !in.AssignableTo(steps[0].In()) {
		return fmt.Errorf("%w: pipeline input %s does not feed step 0 input %s",
			ErrInvalidChain, in, steps[0].In())
	}
	for k := 0; k+1 < len(steps); k++ {
		if !steps[k].Out().AssignableTo(steps[k+1].In()) {
			return fmt.Errorf("%w: step %d output %s does not feed step %d input %s",
				ErrInvalidChain, k, steps[k].Out(), k+1, steps[k+1].In())
		}
	}
	last := steps[len(steps)-1]
	if !last.Out().AssignableTo(out) {
		return fmt.Errorf("%w: step %d output %s does not feed pipeline output %s",
			ErrInvalidChain, len(steps)-1, last.Out(), out)
	}
	return nil
}
