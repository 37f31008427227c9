package texsvg

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/wudi/texsvg/clm"
	"github.com/wudi/texsvg/native"
	"github.com/wudi/texsvg/observability"
	"github.com/wudi/texsvg/svgfix"
)

// fontCandidates is the font lookup order for New. Math fonts must
// come before general-purpose fonts; the first catalog hit wins.
var fontCandidates = []string{
	"XITSMath-Regular.clm2",
	"FiraMath-Regular.clm2",
	"latinmodern-math.clm2",
	"texgyredejavu-math.clm2",
}

// engineMu serializes every native engine call. The engine's font
// registry and default settings are process-global.
var engineMu sync.Mutex

// Renderer drives the engine lifecycle: construct with New, render
// with Render or RenderWithMetrics, release engine state with Close.
type Renderer struct {
	log       observability.Logger
	closeOnce sync.Once
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger routes renderer diagnostics to l.
func WithLogger(l observability.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New initializes the engine with the first available embedded math
// font, sets the default fallback font family and path-based glyph
// rendering, and releases the font metadata handle. It fails with
// ErrInitializationFailed when the catalog holds none of the candidate
// fonts or the engine rejects the data.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}

	var fontName string
	var fontData []byte
	for _, name := range fontCandidates {
		if data, ok := clm.Get(name); ok {
			fontName, fontData = name, data
			break
		}
	}
	if fontData == nil {
		return nil, fmt.Errorf("%w: no math font in catalog (available: %v)",
			ErrInitializationFailed, clm.Available())
	}

	engineMu.Lock()
	defer engineMu.Unlock()

	meta := native.Init(fontData)
	if meta == 0 {
		return nil, fmt.Errorf("%w: engine rejected font %s", ErrInitializationFailed, fontName)
	}
	native.SetDefaultMainFont("Serif")
	native.SetRenderGlyphUsePath(true)
	native.ReleaseFontMeta(meta)

	r.log.Debug("engine initialized", observability.String("font", fontName))
	return r, nil
}

// Render renders a LaTeX source string to a post-processed SVG
// document: the raw engine output is annotated with the rendering DPI
// and its height corrected so no glyph is clipped.
func (r *Renderer) Render(latex string, cfg *Config) (string, error) {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	start := time.Now()

	engineMu.Lock()
	defer engineMu.Unlock()

	render := native.ParseRender(latex, cfg.parseParams())
	if render == 0 {
		return "", ErrParseRenderFailed
	}
	defer native.DeleteRender(render)

	buf := native.RenderToSVG(render)
	if buf.Len() == 0 {
		return "", ErrEmptyOutput
	}
	defer buf.Free()

	raw := buf.Bytes()
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w (offset %d)", ErrInvalidUTF8, invalidUTF8Offset(raw))
	}

	svg := svgfix.AddDPI(string(raw), cfg.DPI)
	svg = svgfix.AdjustHeightAndCenter(svg)

	r.log.Debug("render complete",
		observability.Float64(observability.MetricRenderTime, time.Since(start).Seconds()),
		observability.Int(observability.MetricOutputBytes, len(svg)))
	return svg, nil
}

// RenderWithMetrics renders a LaTeX source string and additionally
// returns the box-tree metrics the engine measured before drawing.
// The four metric fields are required; any missing or mistyped one
// fails the call with ErrParseJSON. Key-character metrics are fetched
// best-effort from the same render handle and omitted on failure.
func (r *Renderer) RenderWithMetrics(latex string, cfg *Config) (*Result, error) {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	start := time.Now()

	engineMu.Lock()
	defer engineMu.Unlock()

	render := native.ParseRender(latex, cfg.parseParams())
	if render == 0 {
		return nil, ErrParseRenderFailed
	}
	defer native.DeleteRender(render)

	buf := native.RenderToSVGWithMetrics(render)
	if buf.Len() == 0 {
		return nil, ErrEmptyOutput
	}
	defer buf.Free()

	raw := buf.Bytes()
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w (offset %d)", ErrInvalidUTF8, invalidUTF8Offset(raw))
	}

	var payload struct {
		SVG     *string `json:"svg"`
		Metrics *struct {
			Width  *int `json:"width"`
			Height *int `json:"height"`
			Depth  *int `json:"depth"`
			Ascent *int `json:"ascent"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseJSON, err)
	}
	if payload.SVG == nil {
		return nil, fmt.Errorf("%w: missing 'svg' field", ErrParseJSON)
	}
	if payload.Metrics == nil {
		return nil, fmt.Errorf("%w: missing 'metrics' field", ErrParseJSON)
	}
	required := map[string]*int{
		"width":  payload.Metrics.Width,
		"height": payload.Metrics.Height,
		"depth":  payload.Metrics.Depth,
		"ascent": payload.Metrics.Ascent,
	}
	for _, field := range []string{"width", "height", "depth", "ascent"} {
		if required[field] == nil {
			return nil, fmt.Errorf("%w: missing or invalid '%s'", ErrParseJSON, field)
		}
	}

	svg := svgfix.AddDPI(*payload.SVG, cfg.DPI)
	svg = svgfix.AdjustHeightAndCenter(svg)

	result := &Result{
		SVG: svg,
		Metrics: Metrics{
			Width:  *payload.Metrics.Width,
			Height: *payload.Metrics.Height,
			Depth:  *payload.Metrics.Depth,
			Ascent: *payload.Metrics.Ascent,
		},
	}

	// Best effort: the render handle is still live here. Failure only
	// omits the optional field.
	if km, err := keyCharMetrics(render); err == nil {
		result.KeyChars = km
	} else {
		r.log.Warn("key char metrics unavailable", observability.Error("err", err))
	}

	r.log.Debug("render with metrics complete",
		observability.Float64(observability.MetricRenderTime, time.Since(start).Seconds()),
		observability.Int(observability.MetricOutputBytes, len(svg)))
	return result, nil
}

// Close releases engine-global state. Safe to call more than once; the
// release happens exactly once, even if no render ever succeeded.
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		engineMu.Lock()
		defer engineMu.Unlock()
		native.Release()
	})
	return nil
}

// keyCharMetrics extracts and decodes key-character metrics from a
// live render handle. Callers must hold engineMu.
func keyCharMetrics(render native.RenderHandle) (*KeyCharMetrics, error) {
	if render == 0 {
		return nil, ErrParseRenderFailed
	}
	buf := native.KeyCharMetrics(render)
	if buf.Len() == 0 {
		return nil, ErrEmptyOutput
	}
	defer buf.Free()

	raw := buf.Bytes()
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w (offset %d)", ErrInvalidUTF8, invalidUTF8Offset(raw))
	}
	return decodeKeyCharMetrics(raw)
}

// invalidUTF8Offset returns the byte offset of the first invalid
// UTF-8 sequence in b.
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
