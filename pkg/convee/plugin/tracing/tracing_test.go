package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/pipeline"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var errDown = errors.New("down")

func recorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func TestPlugin_SuccessfulRun(t *testing.T) {
	t.Parallel()

	sr, tp := recorder(t)
	p := New[int, int]("square", tp.Tracer("test"))

	e, err := engine.New(func(_ context.Context, n int, _ *metadata.Helper) (int, error) {
		return n * n, nil
	}, engine.Options{Plugins: []plugin.Plugin{p}})
	require.NoError(t, err)

	out, err := e.Run(context.Background(), 4, engine.WithItemID("item-4"))
	require.NoError(t, err)
	assert.Equal(t, 16, out)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "square", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("convee.item_id", "item-4"))
}

func TestPlugin_FailedRun(t *testing.T) {
	t.Parallel()

	sr, tp := recorder(t)
	p := New[int, int]("fetch", tp.Tracer("test"))

	e, err := engine.New(func(context.Context, int, *metadata.Helper) (int, error) {
		return 0, errDown
	}, engine.Options{Plugins: []plugin.Plugin{p}})
	require.NoError(t, err)

	_, err = e.Run(context.Background(), 1)
	require.ErrorIs(t, err, errDown)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "down", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestPlugin_RecoveredRunEndsOnce(t *testing.T) {
	t.Parallel()

	sr, tp := recorder(t)
	p := New[int, int]("fetch", tp.Tracer("test"))
	rescue, err := plugin.OnError("zero", func(context.Context, *failure.Error, *metadata.Helper) convee.Result[int] {
		return convee.Success(0)
	})
	require.NoError(t, err)

	e, err := engine.New(func(context.Context, int, *metadata.Helper) (int, error) {
		return 0, errDown
	}, engine.Options{Plugins: []plugin.Plugin{p, rescue}})
	require.NoError(t, err)

	out, err := e.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, out)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestPlugin_NilTracerUsesGlobal(t *testing.T) {
	t.Parallel()

	p := New[int, int]("global", nil)
	assert.NotNil(t, p.tracer)
	assert.Equal(t, "global", p.Name())
}

func TestPlugin_NestedSpansHaveParent(t *testing.T) {
	t.Parallel()

	sr, tp := recorder(t)
	tracer := tp.Tracer("test")

	inner, err := engine.New(func(_ context.Context, n int, _ *metadata.Helper) (int, error) {
		return n + 1, nil
	}, engine.Options{Name: "inc", Plugins: []plugin.Plugin{New[int, int]("inner", tracer)}})
	require.NoError(t, err)

	outer, err := pipeline.New[int, int]([]pipeline.Step{inner, inner}, pipeline.Options{
		Name:    "outer",
		Plugins: []plugin.Plugin{New[int, int]("outer", tracer)},
	})
	require.NoError(t, err)

	out, err := outer.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	spans := sr.Ended()
	require.Len(t, spans, 3)

	byName := map[string][]sdktrace.ReadOnlySpan{}
	for _, s := range spans {
		byName[s.Name()] = append(byName[s.Name()], s)
	}
	require.Len(t, byName["outer"], 1)
	require.Len(t, byName["inner"], 2)

	root := byName["outer"][0]
	assert.False(t, root.Parent().IsValid())
	for _, child := range byName["inner"] {
		assert.Equal(t, root.SpanContext().SpanID(), child.Parent().SpanID())
		assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
	}
}

func TestPlugin_SpanOnContextIsParent(t *testing.T) {
	t.Parallel()

	sr, tp := recorder(t)
	tracer := tp.Tracer("test")

	e, err := engine.New(func(_ context.Context, n int, _ *metadata.Helper) (int, error) {
		return n, nil
	}, engine.Options{Plugins: []plugin.Plugin{New[int, int]("run", tracer)}})
	require.NoError(t, err)

	ctx, caller := tracer.Start(context.Background(), "caller")
	_, err = e.Run(ctx, 1)
	require.NoError(t, err)
	caller.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "run", spans[0].Name())
	assert.Equal(t, caller.SpanContext().SpanID(), spans[0].Parent().SpanID())
}
