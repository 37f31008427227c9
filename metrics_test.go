package texsvg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMetricsTotalHeight(t *testing.T) {
	m := Metrics{Width: 100, Height: 50, Depth: 10, Ascent: 40}
	if got := m.TotalHeight(); got != 50.0 {
		t.Fatalf("expected total height 50, got %v", got)
	}
}

func TestMetricsAspectRatio(t *testing.T) {
	m := Metrics{Width: 200, Height: 50, Depth: 10, Ascent: 40}
	if got := m.AspectRatio(); got != 4.0 {
		t.Fatalf("expected aspect ratio 4, got %v", got)
	}
}

func TestMetricsAspectRatioZeroHeight(t *testing.T) {
	m := Metrics{Width: 100}
	if got := m.AspectRatio(); got != 1.0 {
		t.Fatalf("expected aspect ratio 1 for zero height, got %v", got)
	}
}

func TestMetricsBaselineRatio(t *testing.T) {
	m := Metrics{Width: 100, Height: 50, Depth: 10, Ascent: 40}
	if got := m.BaselineRatio(); got != 0.8 {
		t.Fatalf("expected baseline ratio 0.8, got %v", got)
	}
	if got := (Metrics{}).BaselineRatio(); got != 0.5 {
		t.Fatalf("expected baseline ratio 0.5 for zero height, got %v", got)
	}
}

func TestDecodeKeyCharMetricsFull(t *testing.T) {
	data := []byte(`{
		"key_char_heights": [12, 14, 13],
		"key_char_count": 3,
		"average_char_height": 13.0,
		"max_char_height": 14,
		"min_char_height": 12,
		"box_tree_height": 39.5
	}`)
	got, err := decodeKeyCharMetrics(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := &KeyCharMetrics{
		KeyCharHeights:    []int{12, 14, 13},
		KeyCharCount:      3,
		AverageCharHeight: 13.0,
		MaxCharHeight:     14,
		MinCharHeight:     12,
		BoxTreeHeight:     39.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeKeyCharMetricsDefaults(t *testing.T) {
	got, err := decodeKeyCharMetrics([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(&KeyCharMetrics{}, got); diff != "" {
		t.Fatalf("empty object must decode to zero values (-want +got):\n%s", diff)
	}
}

func TestDecodeKeyCharMetricsWrongTypesDegrade(t *testing.T) {
	data := []byte(`{
		"key_char_heights": "oops",
		"key_char_count": "three",
		"average_char_height": null,
		"box_tree_height": 2.5
	}`)
	got, err := decodeKeyCharMetrics(data)
	if err != nil {
		t.Fatalf("lenient decode must not fail on mistyped fields: %v", err)
	}
	want := &KeyCharMetrics{BoxTreeHeight: 2.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mistyped fields must fall back to defaults (-want +got):\n%s", diff)
	}
}

func TestDecodeKeyCharMetricsMalformed(t *testing.T) {
	_, err := decodeKeyCharMetrics([]byte(`not json`))
	if !errors.Is(err, ErrParseJSON) {
		t.Fatalf("expected ErrParseJSON, got %v", err)
	}
}
