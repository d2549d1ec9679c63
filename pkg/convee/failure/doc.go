// Package failure defines the error envelope returned by engines.
//
// A core transform's error is wrapped once, at the point the engine first
// observes it (Ensure). Every engine that fails to recover the error
// appends a Frame before returning it, so an error that crosses three
// nested pipelines carries three frames, innermost first.
//
// The envelope keeps the original error as its cause: errors.Is and
// errors.As see through it.
package failure
