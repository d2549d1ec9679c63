package pipeline

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/convee/pkg/convee/metadata"
)

func TestChain_Build(t *testing.T) {
	t.Parallel()

	c := ThenFunc(
		Then(StartFunc(parsePlusOne), itoaEngine(t, "itoa")),
		func(_ context.Context, s string, _ *metadata.Helper) (int, error) {
			return strconv.Atoi(s + "0")
		}).Store("result")

	require.Len(t, c.Steps(), 4)

	p, err := c.Build(Options{Name: "chained"})
	require.NoError(t, err)

	// "4" -> 5 -> "5" -> 50
	out, err := p.Run(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, 50, out)
}

func TestChain_StartWithEngine(t *testing.T) {
	t.Parallel()

	p, err := ThenFunc(Start(applyDiscount(t, 0.5)),
		func(_ context.Context, f float64, _ *metadata.Helper) (int, error) {
			return int(f), nil
		}).Build(Options{Name: "floor"})
	require.NoError(t, err)

	out, err := p.Run(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 4, out)
}

func TestChain_NestedPipelineAsUnit(t *testing.T) {
	t.Parallel()

	inner := mustPipeline[int, int](t, []Step{Func(doubleInt)}, Options{Name: "inner"})
	p, err := Then(Then(Start[int, int](inner), inner), Unit[int, int](inner)).Build(Options{Name: "outer"})
	require.NoError(t, err)

	out, err := p.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, out)
}

func TestChain_IsImmutable(t *testing.T) {
	t.Parallel()

	base := StartFunc(doubleInt)
	a := ThenFunc(base, doubleInt)
	b := ThenFunc(base, parsePlusOneInt)

	assert.Len(t, base.Steps(), 1)
	assert.Len(t, a.Steps(), 2)
	assert.Len(t, b.Steps(), 2)
}

func parsePlusOneInt(_ context.Context, n int, _ *metadata.Helper) (int, error) {
	return n + 1, nil
}
