package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

func applyDiscount(t *testing.T, discount float64) *engine.Engine[float64, float64] {
	t.Helper()
	e, err := engine.New(func(_ context.Context, price float64, md *metadata.Helper) (float64, error) {
		md.Add("ApplyDiscountProcessor", fmt.Sprintf("Applying discount of %v%% to price: %v", discount*100, price))
		return price - price*discount, nil
	}, engine.Options{Name: "ApplyDiscountProcessor"})
	require.NoError(t, err)
	return e
}

func addTax(t *testing.T, tax float64) *engine.Engine[float64, float64] {
	t.Helper()
	e, err := engine.New(func(_ context.Context, price float64, md *metadata.Helper) (float64, error) {
		md.Add("AddTaxProcessor", fmt.Sprintf("Adding tax of %v%% to price: %v", tax*100, price))
		return price + price*tax, nil
	}, engine.Options{Name: "AddTaxProcessor"})
	require.NoError(t, err)
	return e
}

func parsePlusOne(_ context.Context, s string, _ *metadata.Helper) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

func doubleInt(_ context.Context, n int, _ *metadata.Helper) (int, error) {
	return n * 2, nil
}

func itoaEngine(t *testing.T, name string) *engine.Engine[int, string] {
	t.Helper()
	e, err := engine.New(func(_ context.Context, n int, _ *metadata.Helper) (string, error) {
		return strconv.Itoa(n), nil
	}, engine.Options{Name: name})
	require.NoError(t, err)
	return e
}

func intPlugin(t *testing.T, name string, hooks plugin.Hooks[int, int]) plugin.Plugin {
	t.Helper()
	p, err := plugin.New(name, hooks)
	require.NoError(t, err)
	return p
}

func floatInput(t *testing.T, name string, fn func(float64) float64) plugin.Plugin {
	t.Helper()
	p, err := plugin.OnInput(name, func(_ context.Context, n float64, _ *metadata.Helper) (float64, error) {
		return fn(n), nil
	})
	require.NoError(t, err)
	return p
}

func mustPipeline[I, O any](t *testing.T, steps []Step, opts Options) *Pipeline[I, O] {
	t.Helper()
	p, err := New[I, O](steps, opts)
	require.NoError(t, err)
	return p
}

// foreignStep satisfies Step but is neither a function step nor a process.
type foreignStep struct{}

func (foreignStep) In() reflect.Type  { return convee.TypeOf[int]() }
func (foreignStep) Out() reflect.Type { return convee.TypeOf[int]() }

// oddProcess reports a kind the pipeline does not know how to run.
type oddProcess struct{}

func (oddProcess) Name() string                  { return "odd" }
func (oddProcess) ID() string                    { return "odd-1" }
func (oddProcess) Kind() convee.Kind             { return "WORKFLOW" }
func (oddProcess) In() reflect.Type              { return convee.TypeOf[int]() }
func (oddProcess) Out() reflect.Type             { return convee.TypeOf[int]() }
func (oddProcess) AddPlugin(plugin.Plugin) error { return nil }
func (oddProcess) RemovePlugin(string) bool      { return false }
func (oddProcess) Execute(context.Context, any, *metadata.Helper) (any, error) {
	return 0, nil
}
