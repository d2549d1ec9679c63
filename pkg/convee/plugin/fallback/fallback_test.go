package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/convee/pkg/convee/engine"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

var (
	errNotFound = errors.New("not found")
	errTimeout  = errors.New("timeout")
)

func failWith(err error) engine.Transform[string, int] {
	return func(context.Context, string, *metadata.Helper) (int, error) {
		return 0, err
	}
}

func newEngine(t *testing.T, err error, plugins ...plugin.Plugin) *engine.Engine[string, int] {
	t.Helper()
	e, eerr := engine.New(failWith(err), engine.Options{Name: "Lookup", Plugins: plugins})
	require.NoError(t, eerr)
	return e
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	_, err := Value("", 1)
	assert.ErrorIs(t, err, plugin.ErrNoName)

	_, err = Func[int]("none", nil)
	assert.ErrorIs(t, err, plugin.ErrNoHooks)
}

func TestValue_RecoversAnyError(t *testing.T) {
	t.Parallel()

	fb, err := Value("default", -1)
	require.NoError(t, err)

	out, err := newEngine(t, errNotFound, fb).Run(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, -1, out)
}

func TestValue_OnlyMatchingTargets(t *testing.T) {
	t.Parallel()

	fb, err := Value("missing", 0, errNotFound)
	require.NoError(t, err)

	out, err := newEngine(t, errNotFound, fb).Run(context.Background(), "key")
	require.NoError(t, err)
	assert.Zero(t, out)

	_, err = newEngine(t, errTimeout, fb).Run(context.Background(), "key")
	require.ErrorIs(t, err, errTimeout)
	assert.Len(t, failure.StackOf(err), 1)
}

func TestFunc_SeesErrorAndMetadata(t *testing.T) {
	t.Parallel()

	fb, err := Func("from-cache", func(_ context.Context, fe *failure.Error, md *metadata.Helper) (int, error) {
		assert.ErrorIs(t, fe, errNotFound)
		v, _ := metadata.Value[int](md, "cached")
		return v, nil
	})
	require.NoError(t, err)

	md := metadata.New("item-1")
	md.Add("cached", 42)

	out, err := newEngine(t, errNotFound, fb).Run(context.Background(), "key", engine.WithMetadata(md))
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestFunc_FailureReplacesError(t *testing.T) {
	t.Parallel()

	errCache := errors.New("cache down")
	fb, err := Func("from-cache", func(context.Context, *failure.Error, *metadata.Helper) (int, error) {
		return 0, errCache
	})
	require.NoError(t, err)

	_, err = newEngine(t, errNotFound, fb).Run(context.Background(), "key")
	assert.ErrorIs(t, err, errCache)
	assert.NotErrorIs(t, err, errNotFound)
}

func TestFallback_RecoveredValueReachesOutputBelt(t *testing.T) {
	t.Parallel()

	fb, err := Value("default", 10)
	require.NoError(t, err)
	double, err := plugin.OnOutput("double", func(_ context.Context, n int, _ *metadata.Helper) (int, error) {
		return n * 2, nil
	})
	require.NoError(t, err)

	out, err := newEngine(t, errNotFound, fb, double).Run(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, 20, out)
}
