package batch

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/core"
	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var ErrCancelled = errors.New("batch: item cancelled before it ran")

// Runner is satisfied by *engine.Engine and *pipeline.Pipeline.
type Runner[I, O any] interface {
	Run(ctx context.Context, in I, opts ...engine.RunOption) (O, error)
}

// Run streams every successful input through r on the given number of
// lines. Failed or cancelled inputs pass through without running. Each item
// runs with its own metadata helper, under the input result's id, and its
// output result keeps that id.
//
// When ctx ends, queued items are reported as cancelled unless
// core.WithDrainOptions(ctx, false) says to drop them.
func Run[I, O any](ctx context.Context, r Runner[I, O], inputCh <-chan convee.Result[I],
	lines int, plugins ...plugin.Plugin) <-chan convee.Result[O] {

	if lines <= 0 {
		lines = core.GetWorkerMaxCount(ctx, runtime.NumCPU())
	}

	out := make(chan convee.Result[O])
	wg := &sync.WaitGroup{}

	handlers := core.CancellationHandlers[I, O]{
		OnCancel:            cancelRemaining[I, O],
		OnCancelUnprocessed: cancelOne[I, O],
		OnCancelProcessed:   deliverProcessed[I, O],
	}

	for range lines {
		wg.Add(1)
		go core.Locomotive(ctx, inputCh, out, runOne(r, plugins), handlers, nil, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Map runs every input through r with at most workers runs in flight and
// returns one result per input, in input order. A failing item does not
// stop the others.
func Map[I, O any](ctx context.Context, r Runner[I, O], inputs []I, workers int,
	plugins ...plugin.Plugin) []convee.Result[O] {

	if workers <= 0 {
		workers = core.GetWorkerMaxCount(ctx, runtime.NumCPU())
	}

	results := make([]convee.Result[O], len(inputs))
	run := runOne(r, plugins)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if gCtx.Err() != nil {
				results[i] = convee.Cancel[O](ErrCancelled)
				return nil
			}
			results[i] = run(gCtx, convee.Success(in))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runOne[I, O any](r Runner[I, O], plugins []plugin.Plugin) func(context.Context, convee.Result[I]) convee.Result[O] {
	return func(ctx context.Context, in convee.Result[I]) convee.Result[O] {
		if !in.IsSuccess() {
			return convee.CancelFrom[I, O](in)
		}

		opts := []engine.RunOption{engine.WithItemID(in.Id().String())}
		if len(plugins) > 0 {
			opts = append(opts, engine.WithPlugins(plugins...))
		}

		out, err := r.Run(ctx, in.Result(), opts...)
		if err != nil {
			if convee.IsCancellationError(err) {
				return convee.CancelWith[I, O](in, err)
			}
			return convee.FailFrom[I, O](in, err)
		}
		return convee.SuccessFrom(in, out)
	}
}

func cancelRemaining[I, O any](ctx context.Context, inputCh <-chan convee.Result[I], outCh chan<- convee.Result[O]) {
	if !core.IsDrainRemainingEnabled(ctx, true) {
		for range inputCh {
		}
		return
	}
	for in := range inputCh {
		outCh <- cancelled[I, O](in)
	}
}

func cancelOne[I, O any](ctx context.Context, in convee.Result[I], outCh chan<- convee.Result[O]) {
	if core.IsDrainRemainingEnabled(ctx, true) {
		outCh <- cancelled[I, O](in)
	}
}

// deliverProcessed hands over a result that was computed before the
// context ended but not yet delivered.
func deliverProcessed[I, O any](ctx context.Context, _ convee.Result[I], processed convee.Result[O],
	outCh chan<- convee.Result[O]) {
	if core.IsDrainRemainingEnabled(ctx, true) {
		outCh <- processed
	}
}

func cancelled[I, O any](in convee.Result[I]) convee.Result[O] {
	if in.IsCancel() || in.IsFailure() {
		return convee.CancelFrom[I, O](in)
	}
	return convee.CancelWith[I, O](in, ErrCancelled)
}
