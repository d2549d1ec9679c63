package pipeline

import "context"

// overrideKey scopes a custom step list to one pipeline instance, so nested
// pipelines running under the same context keep their own steps.
type overrideKey struct {
	owner any
}

func withSteps(ctx context.Context, owner any, steps []Step) context.Context {
	return context.WithValue(ctx, overrideKey{owner: owner}, steps)
}

func stepsFrom(ctx context.Context, owner any) ([]Step, bool) {
	steps, ok := ctx.Value(overrideKey{owner: owner}).([]Step)
	return steps, ok
}
