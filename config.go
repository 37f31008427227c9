package texsvg

import "github.com/wudi/texsvg/native"

// Config describes one render request. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// DPI of the output. MicroTeX lays formulas out at 720 by default.
	DPI int

	// LineWidth is the layout width in pixels.
	LineWidth float32

	// LineHeight is the line spacing in pixels.
	LineHeight float32

	// TextColor is packed ARGB (0xAARRGGBB).
	TextColor uint32

	// HasBackground enables background color rendering.
	HasBackground bool

	// RenderGlyphUsePath renders glyphs as paths so output does not
	// depend on fonts installed on the consumer's system.
	RenderGlyphUsePath bool

	// EnableFormulaNumbering enables formula numbering.
	EnableFormulaNumbering bool
}

// DefaultConfig returns the rendering defaults: 720 DPI, 20px line
// width, 20/3 px line height, opaque black text, path glyphs on.
func DefaultConfig() Config {
	return Config{
		DPI:                720,
		LineWidth:          20.0,
		LineHeight:         20.0 / 3.0,
		TextColor:          0xff000000,
		RenderGlyphUsePath: true,
	}
}

func (c *Config) parseParams() native.ParseParams {
	return native.ParseParams{
		DPI:           int32(c.DPI),
		LineWidth:     c.LineWidth,
		LineHeight:    c.LineHeight,
		Color:         c.TextColor,
		HasBackground: c.HasBackground,
		UsePathGlyphs: c.RenderGlyphUsePath,
	}
}
