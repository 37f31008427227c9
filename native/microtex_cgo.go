//go:build microtex && cgo

package native

/*
#cgo pkg-config: microtex
#include <stdbool.h>
#include <stdlib.h>

typedef void *FontMetaPtr;
typedef void *RenderPtr;

extern FontMetaPtr microtex_init(unsigned long len, const unsigned char *data);
extern void microtex_release(void);
extern void microtex_setDefaultMainFont(const char *name);
extern void microtex_setRenderGlyphUsePath(bool use);
extern void microtex_releaseFontMeta(FontMetaPtr ptr);
extern RenderPtr microtex_parseRender(
	const char *tex,
	int width,
	float textSize,
	float lineSpace,
	unsigned int color,
	bool fillWidth,
	bool enableOverrideTeXStyle,
	unsigned int texStyle);
extern void microtex_deleteRender(RenderPtr render);
extern unsigned char *microtex_render_to_svg(RenderPtr render, unsigned long *out_len);
extern unsigned char *microtex_render_to_svg_with_metrics(RenderPtr render, unsigned long *out_len);
extern unsigned char *microtex_get_key_char_metrics(RenderPtr render, unsigned long *out_len);
extern void microtex_free_buffer(unsigned char *buf);
*/
import "C"

import "unsafe"

// Buffer is an engine-owned byte buffer. Bytes copies the payload into
// Go memory; Free returns the buffer to the engine. Free is idempotent
// and must be called before the buffer's render handle is deleted.
type Buffer struct {
	ptr    unsafe.Pointer
	length uint64
}

// Len returns the payload length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return int(b.length)
}

// Bytes copies the native payload into Go-owned memory.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.ptr == nil || b.length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(b.ptr), int(b.length))
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// Free releases the native buffer. Safe to call more than once.
func (b *Buffer) Free() {
	if b == nil || b.ptr == nil {
		return
	}
	C.microtex_free_buffer((*C.uchar)(b.ptr))
	b.ptr = nil
	b.length = 0
}

// Init loads CLM font metadata into the engine. A zero handle means the
// engine rejected the data. The returned handle must be released with
// ReleaseFontMeta once initialization is complete.
func Init(fontData []byte) FontMetaHandle {
	if len(fontData) == 0 {
		return 0
	}
	// The length crosses the boundary as C unsigned long, 32 bits on
	// Windows. Refuse rather than truncate.
	if err := checkNativeLen(len(fontData)); err != nil {
		return 0
	}
	meta := C.microtex_init(C.ulong(len(fontData)), (*C.uchar)(unsafe.Pointer(&fontData[0])))
	return FontMetaHandle(uintptr(meta))
}

// SetDefaultMainFont sets the engine-global fallback font family.
func SetDefaultMainFont(name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.microtex_setDefaultMainFont(cname)
}

// SetRenderGlyphUsePath toggles engine-global path-based glyph output.
func SetRenderGlyphUsePath(use bool) {
	C.microtex_setRenderGlyphUsePath(C.bool(use))
}

// ReleaseFontMeta frees font metadata returned by Init.
func ReleaseFontMeta(h FontMetaHandle) {
	if h == 0 {
		return
	}
	C.microtex_releaseFontMeta(C.FontMetaPtr(unsafe.Pointer(uintptr(h))))
}

// ParseRender parses and lays out a LaTeX source string. A zero handle
// means the parse or layout failed.
func ParseRender(tex string, p ParseParams) RenderHandle {
	ctex := C.CString(tex)
	defer C.free(unsafe.Pointer(ctex))
	r := C.microtex_parseRender(
		ctex,
		C.int(p.DPI),
		C.float(p.LineWidth),
		C.float(p.LineHeight),
		C.uint(p.Color),
		C.bool(p.HasBackground),
		C.bool(p.UsePathGlyphs),
		0,
	)
	return RenderHandle(uintptr(r))
}

// RenderToSVG draws the render into an SVG byte buffer. Returns nil on
// failure or empty output.
func RenderToSVG(h RenderHandle) *Buffer {
	var n C.ulong
	p := C.microtex_render_to_svg(C.RenderPtr(unsafe.Pointer(uintptr(h))), &n)
	return wrapBuffer(p, n)
}

// RenderToSVGWithMetrics draws the render and returns a JSON payload
// bundling the SVG with box-tree metrics.
func RenderToSVGWithMetrics(h RenderHandle) *Buffer {
	var n C.ulong
	p := C.microtex_render_to_svg_with_metrics(C.RenderPtr(unsafe.Pointer(uintptr(h))), &n)
	return wrapBuffer(p, n)
}

// KeyCharMetrics returns a JSON payload describing top-level key
// character boxes of the render.
func KeyCharMetrics(h RenderHandle) *Buffer {
	var n C.ulong
	p := C.microtex_get_key_char_metrics(C.RenderPtr(unsafe.Pointer(uintptr(h))), &n)
	return wrapBuffer(p, n)
}

// DeleteRender frees a render handle returned by ParseRender.
func DeleteRender(h RenderHandle) {
	if h == 0 {
		return
	}
	C.microtex_deleteRender(C.RenderPtr(unsafe.Pointer(uintptr(h))))
}

// Release tears down engine-global state. Call exactly once, after the
// last render.
func Release() {
	C.microtex_release()
}

func wrapBuffer(p *C.uchar, n C.ulong) *Buffer {
	if p == nil || n == 0 {
		return nil
	}
	// Widen the native length; C.ulong is at most 64 bits.
	return &Buffer{ptr: unsafe.Pointer(p), length: uint64(n)}
}
