// Package svgfix post-processes SVG documents emitted by the MicroTeX
// engine. It annotates the root element with the rendering DPI and
// corrects the declared height so that glyph paths exceeding the
// original viewport are recentered instead of clipped.
//
// The coordinate extraction is a textual scan tuned to the engine's
// cairo output, not a general SVG parser: path data numbers are paired
// as alternating X/Y values, which does not hold for one-argument
// commands like H and V. Do not reuse it on arbitrary SVG.
package svgfix
