// Package plugin defines belt plugins: named values hooking into an
// engine before its input, after its output, or when its core fails.
//
// A plugin opts into a belt by implementing the matching interface:
// - InputProcessor[T]: rewrite the input before the core transform
// - OutputProcessor[T]: rewrite the output after the core transform
// - ErrorProcessor[T]: transform an error or recover from it
//
// Engines probe plugins with AsInput, AsOutput and AsError, so one value
// may serve several belts. New builds a plugin from plain functions.
package plugin
