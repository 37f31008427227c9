//go:build !microtex || !cgo

package texsvg

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wudi/texsvg/clm"
	"github.com/wudi/texsvg/native"
)

// withStubEngine configures a healthy stub engine and a registered
// math font for the duration of a test.
func withStubEngine(t *testing.T) {
	t.Helper()
	release := native.LockTest()
	t.Cleanup(release)

	native.SetInitSucceed(true)
	native.SetParseSucceed(true)
	native.SetReturnEmpty(false)
	native.SetBuffer(nil)

	clm.Register("XITSMath-Regular.clm2", []byte{0x43, 0x4c, 0x4d, 0x02})
	t.Cleanup(func() { clm.Remove("XITSMath-Regular.clm2") })
}

func TestNewSuccess(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()
}

func TestNewInitFailure(t *testing.T) {
	withStubEngine(t)
	native.SetInitSucceed(false)
	if _, err := New(); !errors.Is(err, ErrInitializationFailed) {
		t.Fatalf("expected ErrInitializationFailed, got %v", err)
	}
}

func TestNewNoFonts(t *testing.T) {
	release := native.LockTest()
	defer release()
	native.SetInitSucceed(true)
	for _, name := range fontCandidates {
		clm.Remove(name)
	}
	if _, err := New(); !errors.Is(err, ErrInitializationFailed) {
		t.Fatalf("expected ErrInitializationFailed without fonts, got %v", err)
	}
}

func TestRenderParseFailure(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetParseSucceed(false)
	if _, err := r.Render("x", nil); !errors.Is(err, ErrParseRenderFailed) {
		t.Fatalf("expected ErrParseRenderFailed, got %v", err)
	}
}

func TestRenderEmptyOutput(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetReturnEmpty(true)
	if _, err := r.Render("x", nil); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestRenderInvalidUTF8(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetBuffer([]byte{0xff, 0xfe, 0xfd})
	if _, err := r.Render("x", nil); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestRenderSuccess(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetBuffer([]byte("<svg>ok</svg>"))
	svg, err := r.Render(`\[E = mc^2\]`, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("missing svg tag: %s", svg)
	}
	if !strings.Contains(svg, `data-dpi="720"`) {
		t.Fatalf("default DPI not annotated: %s", svg)
	}
}

func TestRenderMultipleSequential(t *testing.T) {
	// The real engine has crashed on repeated renders through one
	// instance; the stub backend documents the intended contract that
	// serialized sequential renders work.
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	for _, formula := range []string{"x^2", "y^2", "z^2"} {
		native.SetBuffer([]byte("<svg>" + formula + "</svg>"))
		svg, err := r.Render(formula, nil)
		if err != nil {
			t.Fatalf("render %q failed: %v", formula, err)
		}
		if !strings.Contains(svg, formula) {
			t.Fatalf("render %q returned stale output: %s", formula, svg)
		}
	}
}

func TestRenderWithMetricsSuccess(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetBuffer([]byte(`{
		"svg": "<svg>t</svg>",
		"metrics": {"width": 100, "height": 50, "depth": 10, "ascent": 40}
	}`))
	res, err := r.RenderWithMetrics("x^2", nil)
	if err != nil {
		t.Fatalf("RenderWithMetrics failed: %v", err)
	}
	if !strings.Contains(res.SVG, "<svg") {
		t.Fatalf("missing svg content: %s", res.SVG)
	}
	want := Metrics{Width: 100, Height: 50, Depth: 10, Ascent: 40}
	if diff := cmp.Diff(want, res.Metrics); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
	if got := res.Metrics.AspectRatio(); got != 2.0 {
		t.Fatalf("expected aspect ratio 2.0, got %v", got)
	}
	// The stub serves the same JSON for the key-char fetch; the lenient
	// decode yields zero values rather than failing.
	if res.KeyChars == nil {
		t.Fatal("expected best-effort key char metrics")
	}
}

func TestRenderWithMetricsParseFailure(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetParseSucceed(false)
	if _, err := r.RenderWithMetrics("x", nil); !errors.Is(err, ErrParseRenderFailed) {
		t.Fatalf("expected ErrParseRenderFailed, got %v", err)
	}
}

func TestRenderWithMetricsEmptyOutput(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetReturnEmpty(true)
	if _, err := r.RenderWithMetrics("x", nil); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestRenderWithMetricsInvalidJSON(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	native.SetBuffer([]byte("not valid json"))
	if _, err := r.RenderWithMetrics("x", nil); !errors.Is(err, ErrParseJSON) {
		t.Fatalf("expected ErrParseJSON, got %v", err)
	}
}

func TestRenderWithMetricsMissingFields(t *testing.T) {
	cases := map[string]string{
		"missing svg":     `{"metrics": {"width": 100, "height": 50, "depth": 10, "ascent": 40}}`,
		"missing metrics": `{"svg": "<svg>t</svg>"}`,
		"missing width":   `{"svg": "<svg>t</svg>", "metrics": {"height": 50, "depth": 10, "ascent": 40}}`,
		"missing height":  `{"svg": "<svg>t</svg>", "metrics": {"width": 100, "depth": 10, "ascent": 40}}`,
		"mistyped width":  `{"svg": "<svg>t</svg>", "metrics": {"width": "wide", "height": 50, "depth": 10, "ascent": 40}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			withStubEngine(t)
			r, err := New()
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			defer r.Close()

			native.SetBuffer([]byte(payload))
			if _, err := r.RenderWithMetrics("x", nil); !errors.Is(err, ErrParseJSON) {
				t.Fatalf("expected ErrParseJSON, got %v", err)
			}
		})
	}
}

func TestCloseIdempotent(t *testing.T) {
	withStubEngine(t)
	r, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
