package convee

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultStates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	ok := Success(5)
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsFailure())
	assert.Equal(t, 5, ok.Result())
	assert.NoError(t, ok.Err())

	failed := Fail[int](boom)
	assert.True(t, failed.IsFailure())
	assert.False(t, failed.IsCancel())
	assert.ErrorIs(t, failed.Err(), boom)

	cancelled := Cancel[int](context.Canceled)
	assert.True(t, cancelled.IsCancel())
	assert.False(t, cancelled.IsFailure())

	assert.True(t, Result[int]{}.IsEmpty())
	assert.False(t, Fail[int](nil).IsFailure())
}

func TestCancelFrom(t *testing.T) {
	t.Parallel()

	failed := Fail[int](errors.New("bad"))
	moved := CancelFrom[int, string](failed)

	assert.Equal(t, failed.Id(), moved.Id())
	assert.Equal(t, failed.CreatedAt(), moved.CreatedAt())
	assert.True(t, moved.IsFailure())
	assert.Empty(t, moved.Result())

	cancelled := CancelFrom[int, string](Cancel[int](context.Canceled))
	assert.True(t, cancelled.IsCancel())
}

func TestDerivedResultsKeepIdentity(t *testing.T) {
	t.Parallel()

	in := Success(2)

	ok := SuccessFrom(in, "two")
	assert.Equal(t, in.Id(), ok.Id())
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, "two", ok.Result())

	failed := FailFrom[int, string](in, errors.New("bad"))
	assert.Equal(t, in.Id(), failed.Id())
	assert.True(t, failed.IsFailure())

	cancelled := CancelWith[int, string](in, context.Canceled)
	assert.Equal(t, in.Id(), cancelled.Id())
	assert.True(t, cancelled.IsCancel())
	assert.ErrorIs(t, cancelled.Err(), context.Canceled)
}

func TestAs(t *testing.T) {
	t.Parallel()

	n, ok := As[int](3)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = As[int]("3")
	assert.False(t, ok)

	_, ok = As[int](nil)
	assert.False(t, ok)

	var e error
	e, ok = As[error](nil)
	assert.True(t, ok)
	assert.Nil(t, e)

	s, ok := As[fmt.Stringer](KindPipeline)
	assert.True(t, ok)
	assert.Equal(t, "PIPELINE", s.String())
}

func TestGetErrors(t *testing.T) {
	t.Parallel()

	a, b := errors.New("a"), errors.New("b")

	assert.Empty(t, GetErrors(nil))
	assert.Equal(t, []error{a}, GetErrors(a))
	assert.Equal(t, []error{a, b}, GetErrors(errors.Join(a, b)))
}

func TestIsCancellationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCancellationError(context.Canceled))
	assert.True(t, IsCancellationError(fmt.Errorf("run: %w", context.DeadlineExceeded)))
	assert.False(t, IsCancellationError(errors.New("other")))
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.True(t, KindProcess.Valid())
	assert.True(t, KindPipeline.Valid())
	assert.False(t, Kind("SOMETHING").Valid())
	assert.Equal(t, "PROCESS_ENGINE", KindProcess.String())
}
