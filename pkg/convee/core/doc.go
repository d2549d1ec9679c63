// Package core contains the channel plumbing behind batch runs: converting
// slices to result streams and back, the locomotive loop that drives a
// worker, and worker/drain options carried on the context.
package core
