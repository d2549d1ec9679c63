package core

import (
	"context"

	"github.com/ib-77/convee/pkg/convee"
)

type ToChanHandlers[T any] struct {
	OnStartFail func(ctx context.Context, input []T)
	OnSuccess   func(ctx context.Context, input T)
	OnBreak     func(ctx context.Context, rest []T)
}

// ToChanResults streams values as successful results and closes the
// channel when done or when ctx ends.
func ToChanResults[T any](ctx context.Context, handlers ToChanHandlers[T], values ...T) <-chan convee.Result[T] {
	in := make(chan convee.Result[T])

	go func() {
		defer close(in)

		if ctx.Err() != nil {
			if handlers.OnStartFail != nil {
				handlers.OnStartFail(ctx, values)
			}
			return
		}

		for i, v := range values {
			select {
			case in <- convee.Success(v):
				if handlers.OnSuccess != nil {
					handlers.OnSuccess(ctx, v)
				}
			case <-ctx.Done():
				if handlers.OnBreak != nil {
					handlers.OnBreak(ctx, values[i:])
				}
				return
			}
		}
	}()

	return in
}

func ToChanManyResults[T any](ctx context.Context, values []T) <-chan convee.Result[T] {
	return ToChanResults(ctx, ToChanHandlers[T]{}, values...)
}

// FromChanMany collects everything out sends until it closes or ctx ends.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}
