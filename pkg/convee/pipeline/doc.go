// Package pipeline chains steps into a single engine.
//
// A Pipeline is an engine.Engine whose core transform runs each step in
// order, threading one metadata helper through all of them. Steps are:
// - Func: a plain function, unnamed
// - any engine.Process: an engine or another pipeline, addressable by name
// - StoreMetadata / StoreOutput: pass-through connectors writing metadata
//
// Step types are checked when the pipeline is built: each step's output
// must be assignable to the next step's input. Chain offers the same check
// at compile time.
//
// RunCustom swaps the step list for one call. The swap travels on the
// call's context, so overlapping calls never see each other's steps.
package pipeline
