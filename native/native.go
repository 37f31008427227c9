package native

// FontMetaHandle is an opaque token for font metadata loaded by
// microtex_init. It must be released with ReleaseFontMeta exactly once.
type FontMetaHandle uintptr

// RenderHandle is an opaque token for one in-progress render inside the
// engine. It must be released with DeleteRender exactly once, on every
// exit path.
type RenderHandle uintptr

// ParseParams carries the arguments of microtex_parseRender.
type ParseParams struct {
	DPI           int32
	LineWidth     float32
	LineHeight    float32
	Color         uint32
	HasBackground bool
	UsePathGlyphs bool
}
