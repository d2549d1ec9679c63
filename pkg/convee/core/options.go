package core

import "context"

type OptionKey string

const (
	DrainOptionKey  OptionKey = "drain_options"
	WorkerOptionKey OptionKey = "worker_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// DrainOptions decides what happens to queued items once the context is
// done: with Remaining set they are reported as cancelled, otherwise they
// are dropped.
type DrainOptions struct {
	Remaining bool
}

func WithDrainOptions(ctx context.Context, remaining bool) context.Context {
	return context.WithValue(ctx, DrainOptionKey, DrainOptions{Remaining: remaining})
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func IsDrainRemainingEnabled(ctx context.Context, defaultRemaining bool) bool {
	options, ok := ctx.Value(DrainOptionKey).(DrainOptions)
	if ok {
		return options.Remaining
	}
	return defaultRemaining
}
