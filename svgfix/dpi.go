package svgfix

import (
	"fmt"
	"strings"
)

// AddDPI injects a data-dpi attribute into the opening <svg> tag. The
// attribute lets downstream consumers (PDF embedding, rasterization)
// recover the DPI the formula was laid out at. Input without a
// parseable <svg> tag is returned unchanged.
func AddDPI(svg string, dpi int) string {
	start := strings.Index(svg, "<svg")
	if start < 0 {
		return svg
	}
	close := strings.IndexByte(svg[start:], '>')
	if close < 0 {
		return svg
	}
	at := start + close
	var b strings.Builder
	b.Grow(len(svg) + 20)
	b.WriteString(svg[:at])
	fmt.Fprintf(&b, ` data-dpi="%d"`, dpi)
	b.WriteString(svg[at:])
	return b.String()
}
