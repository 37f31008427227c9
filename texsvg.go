// Package texsvg renders LaTeX formulas to SVG through the MicroTeX
// native typesetting engine and corrects the emitted geometry so tall
// glyphs are recentered instead of clipped.
//
// The engine keeps process-global mutable state, so all native calls
// are serialized behind a single package-level mutex; constructing
// several Renderer instances is safe but they share that state. The
// engine has also been observed to crash (SIGSEGV) when one instance
// performs many sequential renders against the real native library.
// Until that is fixed upstream, treat one render per Renderer as the
// conservative contract when linking the real engine.
//
// Builds without the "microtex" tag use a deterministic in-memory
// engine stub; see the native package.
package texsvg

import "errors"

var (
	// ErrInitializationFailed means no usable embedded font was found
	// or the engine rejected the font data.
	ErrInitializationFailed = errors.New("texsvg: engine initialization failed")

	// ErrParseRenderFailed means the engine could not parse or lay out
	// the LaTeX source.
	ErrParseRenderFailed = errors.New("texsvg: failed to parse and render LaTeX source")

	// ErrEmptyOutput means the engine produced no output bytes.
	ErrEmptyOutput = errors.New("texsvg: rendering returned empty output")

	// ErrInvalidUTF8 means the engine's output is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("texsvg: output is not valid UTF-8")

	// ErrParseJSON means the metrics payload could not be decoded or a
	// required field was missing or mistyped.
	ErrParseJSON = errors.New("texsvg: failed to parse metrics JSON")
)
