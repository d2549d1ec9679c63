package engine

import (
	"context"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

func (e *Engine[I, O]) runInputBelt(ctx context.Context, in I, md *metadata.Helper,
	belt []plugin.Plugin) (I, error) {

	current := in
	for _, p := range belt {
		ip, ok := plugin.AsInput[I](p)
		if !ok {
			continue
		}

		next, err := ip.ProcessInput(ctx, current, md)
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

func (e *Engine[I, O]) runOutputBelt(ctx context.Context, out O, md *metadata.Helper,
	belt []plugin.Plugin) (O, error) {

	current := out
	for _, p := range belt {
		op, ok := plugin.AsOutput[O](p)
		if !ok {
			continue
		}

		next, err := op.ProcessOutput(ctx, current, md)
		if err != nil {
			var zero O
			return zero, err
		}
		current = next
	}
	return current, nil
}

// runErrorBelt stops at the first plugin returning a success. A plugin
// returning a failure replaces the current error; one returning no error
// leaves it as it was.
func (e *Engine[I, O]) runErrorBelt(ctx context.Context, fe *failure.Error, md *metadata.Helper,
	belt []plugin.Plugin) convee.Result[O] {

	current := fe
	for _, p := range belt {
		ep, ok := plugin.AsError[O](p)
		if !ok {
			continue
		}

		res := ep.ProcessError(ctx, current, md)
		if res.IsSuccess() {
			return res
		}
		if err := res.Err(); err != nil {
			current = failure.Ensure(err)
		}
	}
	return convee.Fail[O](current)
}
