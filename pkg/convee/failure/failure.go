package failure

import (
	"errors"
	"fmt"

	"github.com/ib-77/convee/pkg/convee"
)

// Frame records one engine an unrecovered error passed through.
type Frame struct {
	Source   string      // engine id
	Kind     convee.Kind // engine kind
	ItemID   string
	DataKeys []string // metadata keys collected when the engine gave up
}

func (f Frame) String() string {
	return fmt.Sprintf("%s(%s) item=%s", f.Kind, f.Source, f.ItemID)
}

// Error is the envelope returned by engines whose core transform failed
// and whose error belt did not recover. Stack only ever grows.
type Error struct {
	Message string
	Cause   error
	Stack   []Frame
}

// Wrap builds an envelope around err with an empty stack.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: err.Error(),
		Cause:   err,
		Stack:   []Frame{},
	}
}

// Ensure returns err when it already is an envelope, otherwise wraps it.
// Only the outermost value is inspected: an envelope hidden behind
// fmt.Errorf("%w") gets a fresh envelope so the outer message survives.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok && e != nil {
		return e
	}
	return Wrap(err)
}

// Enrich appends frame and returns the receiver.
func (e *Error) Enrich(frame Frame) *Error {
	e.Stack = append(e.Stack, frame)
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Depth is the number of engines that re-returned the error.
func (e *Error) Depth() int {
	return len(e.Stack)
}

// StackOf returns a copy of the engine stack of the first envelope in
// err's chain, or nil.
func StackOf(err error) []Frame {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	out := make([]Frame, len(e.Stack))
	copy(out, e.Stack)
	return out
}
