package core

import (
	"context"
	"sync"

	"github.com/ib-77/convee/pkg/convee"
)

// CancellationHandlers are called when the context ends while a
// locomotive is running. Any of them may be nil.
type CancellationHandlers[In, Out any] struct {
	// OnCancel receives the rest of the input stream.
	OnCancel func(ctx context.Context, inputCh <-chan convee.Result[In], outCh chan<- convee.Result[Out])
	// OnCancelUnprocessed receives an item taken from the stream but not run.
	OnCancelUnprocessed func(ctx context.Context, unprocessed convee.Result[In], outCh chan<- convee.Result[Out])
	// OnCancelProcessed receives an item whose result could not be delivered.
	OnCancelProcessed func(ctx context.Context, in convee.Result[In], processed convee.Result[Out], outCh chan<- convee.Result[Out])
}

// Locomotive pulls items from inputCh, runs each through engine and pushes
// the result to outCh until the input closes or ctx ends. Several
// locomotives may share the same channels.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan convee.Result[In], outCh chan<- convee.Result[Out],
	engine func(ctx context.Context, input convee.Result[In]) convee.Result[Out],
	handlers CancellationHandlers[In, Out],
	onSuccess func(ctx context.Context, out convee.Result[Out]), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			if handlers.OnCancel != nil {
				handlers.OnCancel(ctx, inputCh, outCh)
			}
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			if ctx.Err() != nil {
				if handlers.OnCancelUnprocessed != nil {
					handlers.OnCancelUnprocessed(ctx, in, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			}

			pr := engine(ctx, in)

			select {
			case outCh <- pr:
				if onSuccess != nil {
					onSuccess(ctx, pr)
				}
			case <-ctx.Done():
				if handlers.OnCancelProcessed != nil {
					handlers.OnCancelProcessed(ctx, in, pr, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			}
		}
	}
}
