package convee

import (
	"time"

	"github.com/google/uuid"
)

// Result carries either a value or an error out of a step that may fail.
// Error plugins return it to say whether they recovered (Success) or
// forwarded an error (Fail); batch runs return one per item.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// CancelFrom re-types a cancelled or failed result, keeping its identity.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isSuccess: false,
		isCancel:  from.isCancel,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

// SuccessFrom, FailFrom and CancelWith derive a result from the one it was
// computed from, keeping its id so outputs can be matched to inputs.
func SuccessFrom[In, Out any](from Result[In], v Out) Result[Out] {
	return Result[Out]{
		result:    v,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        from.id,
	}
}

func FailFrom[In, Out any](from Result[In], err error) Result[Out] {
	return Result[Out]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        from.id,
	}
}

func CancelWith[In, Out any](from Result[In], err error) Result[Out] {
	return Result[Out]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        from.id,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isCancel && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
