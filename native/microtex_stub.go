//go:build !microtex || !cgo

package native

import "sync"

// Deterministic stand-in for the MicroTeX engine, compiled whenever the
// real backend is not selected. It never touches native memory: buffers
// are served from a process-global, mutex-guarded control block that
// tests configure. Handle values are arbitrary non-zero tokens.
//
// Defaults mimic a healthy engine with no output configured: init and
// parse succeed, extraction returns an empty buffer.

const (
	stubFontMeta FontMetaHandle = 1
	stubRender   RenderHandle   = 2
)

var ctl = struct {
	sync.Mutex
	initOK      bool
	parseOK     bool
	returnEmpty bool
	buf         []byte
}{initOK: true, parseOK: true}

// testMu serializes tests that reconfigure the stub. Distinct from the
// control-block mutex so helpers stay usable while a test holds it.
var testMu sync.Mutex

// LockTest serializes tests that touch stub state. The returned
// function releases the lock.
func LockTest() (release func()) {
	testMu.Lock()
	return testMu.Unlock
}

// SetInitSucceed controls whether Init returns a handle.
func SetInitSucceed(v bool) {
	ctl.Lock()
	defer ctl.Unlock()
	ctl.initOK = v
}

// SetParseSucceed controls whether ParseRender returns a handle.
func SetParseSucceed(v bool) {
	ctl.Lock()
	defer ctl.Unlock()
	ctl.parseOK = v
}

// SetReturnEmpty forces extraction calls to report no output.
func SetReturnEmpty(v bool) {
	ctl.Lock()
	defer ctl.Unlock()
	ctl.returnEmpty = v
}

// SetBuffer installs the payload served by the extraction calls.
func SetBuffer(data []byte) {
	ctl.Lock()
	defer ctl.Unlock()
	ctl.buf = append([]byte(nil), data...)
}

// Buffer is a stub engine buffer backed by Go memory.
type Buffer struct {
	data []byte
}

// Len returns the payload length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes copies the payload.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b.data...)
}

// Free is a no-op for stub buffers.
func (b *Buffer) Free() {}

// Init returns a handle when the stub is configured to succeed.
func Init(fontData []byte) FontMetaHandle {
	if err := checkNativeLen(len(fontData)); err != nil {
		return 0
	}
	ctl.Lock()
	defer ctl.Unlock()
	if !ctl.initOK {
		return 0
	}
	return stubFontMeta
}

// SetDefaultMainFont is a no-op in the stub.
func SetDefaultMainFont(name string) {}

// SetRenderGlyphUsePath is a no-op in the stub.
func SetRenderGlyphUsePath(use bool) {}

// ReleaseFontMeta is a no-op in the stub.
func ReleaseFontMeta(h FontMetaHandle) {}

// ParseRender returns a handle when the stub is configured to succeed.
func ParseRender(tex string, p ParseParams) RenderHandle {
	ctl.Lock()
	defer ctl.Unlock()
	if !ctl.parseOK {
		return 0
	}
	return stubRender
}

// RenderToSVG serves the configured buffer.
func RenderToSVG(h RenderHandle) *Buffer {
	return serveBuffer()
}

// RenderToSVGWithMetrics serves the configured buffer.
func RenderToSVGWithMetrics(h RenderHandle) *Buffer {
	return serveBuffer()
}

// KeyCharMetrics serves the configured buffer.
func KeyCharMetrics(h RenderHandle) *Buffer {
	return serveBuffer()
}

// DeleteRender is a no-op in the stub.
func DeleteRender(h RenderHandle) {}

// Release is a no-op in the stub.
func Release() {}

func serveBuffer() *Buffer {
	ctl.Lock()
	defer ctl.Unlock()
	if ctl.returnEmpty || len(ctl.buf) == 0 {
		return nil
	}
	return &Buffer{data: append([]byte(nil), ctl.buf...)}
}
