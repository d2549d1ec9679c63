// Package convee holds the shared vocabulary of the engine: Result[T] for
// values that may carry an error, Kind tags for engines, and small error
// helpers.
//
// The engine itself lives in subpackages:
// - metadata: the per-run key/value context
// - failure: the error envelope that accumulates an engine stack
// - plugin: belt plugins and their hook interfaces
// - engine: a single process with input, output and error belts
// - pipeline: ordered steps sharing one metadata context
// - core: channel plumbing and worker options behind batch
// - batch: many independent runs over one engine
package convee
