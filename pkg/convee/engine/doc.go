// Package engine runs one core transform between three plugin belts.
//
// A run moves through:
// - input belt: registered then single-use input plugins, in order
// - core: the Transform, given the shared metadata helper
// - output belt: registered then single-use output plugins, in order
// - error belt (core failure only): error plugins until one recovers
//
// An unrecovered core error is returned as a *failure.Error carrying one
// more Frame for this engine. Errors raised by input and output plugins
// are returned as they are, without a frame and without visiting the error
// belt.
//
// Engines hold no per-run state: concurrent Run calls are independent as
// long as they do not share a metadata helper on purpose.
package engine
