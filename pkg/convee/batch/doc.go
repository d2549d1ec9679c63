// Package batch runs many independent items through one engine or
// pipeline concurrently. Steps of a single item still run in sequence; only
// separate items overlap, each with its own metadata helper.
//
// - Run: channel in, channel out, a fixed number of locomotive lines
// - Map: slice in, ordered slice of results out, bounded workers
package batch
