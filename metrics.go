package texsvg

import (
	"encoding/json"
	"fmt"
)

// Metrics holds the dimensional measurements of a rendered formula in
// native rendering units, taken from the engine's box tree.
type Metrics struct {
	// Width of the rendered formula.
	Width int

	// Height is the total extent, ascent plus depth.
	Height int

	// Depth is the extent below the baseline.
	Depth int

	// Ascent is the extent above the baseline.
	Ascent int
}

// AspectRatio returns width over height, or 1.0 when the height is not
// positive.
func (m Metrics) AspectRatio() float64 {
	if m.Height <= 0 {
		return 1.0
	}
	return float64(m.Width) / float64(m.Height)
}

// BaselineRatio returns the share of the height above the baseline, or
// 0.5 when the height is not positive. Values near 1 indicate tall
// superscript-heavy formulas; values near 0 indicate deep fractions or
// subscripts.
func (m Metrics) BaselineRatio() float64 {
	if m.Height <= 0 {
		return 0.5
	}
	return float64(m.Ascent) / float64(m.Height)
}

// TotalHeight returns the height as a float for scaling arithmetic.
func (m Metrics) TotalHeight() float64 { return float64(m.Height) }

// KeyCharMetrics describes the top-level key character boxes of a
// formula, excluding decorative and nested structure. Downstream
// consumers use it to pick scaling factors that account for formula
// complexity.
type KeyCharMetrics struct {
	// KeyCharHeights are the individual box heights.
	KeyCharHeights []int

	// KeyCharCount is the number of key characters found.
	KeyCharCount int

	// AverageCharHeight is the mean box height.
	AverageCharHeight float64

	// MaxCharHeight is the tallest box.
	MaxCharHeight int

	// MinCharHeight is the shortest box.
	MinCharHeight int

	// BoxTreeHeight is the height of the box-tree root in engine units.
	BoxTreeHeight float64
}

// Result bundles the post-processed SVG with its metrics. KeyChars is
// nil when the best-effort key-character fetch failed.
type Result struct {
	SVG      string
	Metrics  Metrics
	KeyChars *KeyCharMetrics
}

// decodeKeyCharMetrics decodes the engine's key-character JSON. The
// decode is deliberately lenient: a missing or mistyped field falls
// back to its zero value instead of failing, in contrast to the strict
// top-level metrics decode in RenderWithMetrics. Only malformed JSON
// is an error.
func decodeKeyCharMetrics(data []byte) (*KeyCharMetrics, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseJSON, err)
	}
	k := &KeyCharMetrics{}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return k, nil
	}
	if arr, ok := obj["key_char_heights"].([]interface{}); ok {
		for _, e := range arr {
			if f, ok := e.(float64); ok {
				k.KeyCharHeights = append(k.KeyCharHeights, int(f))
			}
		}
	}
	if f, ok := obj["key_char_count"].(float64); ok {
		k.KeyCharCount = int(f)
	}
	if f, ok := obj["average_char_height"].(float64); ok {
		k.AverageCharHeight = f
	}
	if f, ok := obj["max_char_height"].(float64); ok {
		k.MaxCharHeight = int(f)
	}
	if f, ok := obj["min_char_height"].(float64); ok {
		k.MinCharHeight = int(f)
	}
	if f, ok := obj["box_tree_height"].(float64); ok {
		k.BoxTreeHeight = f
	}
	return k, nil
}
