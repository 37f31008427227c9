package svgfix

import (
	"strconv"
	"strings"
)

// matrix is a 2D affine transform in SVG matrix(a,b,c,d,e,f) order.
type matrix struct {
	a, b, c, d, e, f float64
}

// applyY returns the transformed Y coordinate: y' = b*x + d*y + f.
func (m matrix) applyY(x, y float64) float64 {
	return m.b*x + m.d*y + m.f
}

// ExtractYCoordinates collects every Y coordinate appearing in <path>
// data across the document, honoring a transform="matrix(...)"
// attribute on the path element when present. Numbers in the path data
// are paired as alternating (x, y); see the package comment for why
// this heuristic is acceptable for engine output.
func ExtractYCoordinates(svg string) []float64 {
	var ys []float64
	search := 0
	for {
		rel := strings.Index(svg[search:], "<path")
		if rel < 0 {
			break
		}
		start := search + rel
		tag, next := pathTag(svg, start)
		if tag == "" {
			break
		}

		m, hasMatrix := parseMatrixTransform(tag)
		nums := pathNumbers(pathData(tag))
		for i := 0; i+1 < len(nums); i += 2 {
			x, y := nums[i], nums[i+1]
			if hasMatrix {
				y = m.applyY(x, y)
			}
			ys = append(ys, y)
		}
		search = next
	}
	return ys
}

// pathTag returns the full open tag starting at off and the offset to
// resume scanning from. An unterminated tag yields the rest of the
// document so a truncated d attribute still contributes coordinates.
func pathTag(svg string, off int) (string, int) {
	end := indexTagEnd(svg, off)
	if end < 0 {
		return svg[off:], len(svg)
	}
	return svg[off : end+1], end + 1
}

// indexTagEnd finds the '>' terminating the tag at off, skipping over
// quoted attribute values.
func indexTagEnd(s string, off int) int {
	var quote byte
	for i := off; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '>':
			return i
		}
	}
	return -1
}

// parseMatrixTransform extracts the six matrix components from a
// transform="matrix(a, b, c, d, e, f)" attribute inside tag. Fewer than
// six parseable values means no transform.
func parseMatrixTransform(tag string) (matrix, bool) {
	const marker = `transform="matrix(`
	idx := strings.Index(tag, marker)
	if idx < 0 {
		return matrix{}, false
	}
	rest := tag[idx+len(marker):]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return matrix{}, false
	}
	var vals []float64
	for _, part := range strings.Split(rest[:close], ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) < 6 {
		return matrix{}, false
	}
	return matrix{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, true
}

// pathData returns the content of the d attribute inside tag, or "".
func pathData(tag string) string {
	idx := strings.Index(tag, ` d="`)
	if idx < 0 {
		return ""
	}
	rest := tag[idx+4:]
	close := strings.IndexByte(rest, '"')
	if close < 0 {
		return rest
	}
	return rest[:close]
}

// pathNumbers tokenizes path data into its flat numeric sequence. A
// run of digits, '-' and '.' is one number; command letters and
// separators terminate the current token.
func pathNumbers(d string) []float64 {
	var nums []float64
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		if v, err := strconv.ParseFloat(cur.String(), 64); err == nil {
			nums = append(nums, v)
		}
		cur.Reset()
	}
	for i := 0; i < len(d); i++ {
		ch := d[i]
		if ch >= '0' && ch <= '9' || ch == '-' || ch == '.' {
			cur.WriteByte(ch)
			continue
		}
		flush()
	}
	flush()
	return nums
}
