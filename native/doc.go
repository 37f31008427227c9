// Package native is the safety shim around the MicroTeX C API. Every
// foreign call is wrapped by exactly one Go function that owns the
// conversion between Go types and the native ABI, including the
// unsigned-long width difference between Unix and Windows targets.
//
// The backend is selected at compile time, not at run time. Builds with
// the "microtex" tag (and cgo enabled) link against the real engine;
// every other build gets a deterministic in-memory stub whose behavior
// tests configure through SetInitSucceed, SetParseSucceed,
// SetReturnEmpty and SetBuffer. The stub is process-global state and is
// internally synchronized; tests that touch it must serialize through
// LockTest.
//
// The engine keeps process-global mutable state (font registry,
// default settings). Callers must not issue concurrent native calls;
// the texsvg package serializes them behind a single mutex.
package native
