package svgfix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// yTolerance is the near-zero bound under which content is considered
// already within the declared viewport.
const yTolerance = 0.02

// AdjustHeightAndCenter grows the declared height of the document to
// the ceiling of the largest Y coordinate found in its path data and
// recenters the drawable content with a translate group, so glyphs
// that overshoot the original height are no longer clipped.
//
// The root <svg> element keeps its attributes except that height is
// replaced and the fourth viewBox component is updated. All direct
// children are wrapped in <g transform="translate(0, t)"> where
// t = (ceil(maxY) - maxY) / 2. Input whose maximum Y is below the
// tolerance, or that contains no coordinates at all, is returned
// unchanged.
func AdjustHeightAndCenter(svg string) string {
	ys := ExtractYCoordinates(svg)
	if len(ys) == 0 {
		return svg
	}
	maxY := ys[0]
	for _, y := range ys[1:] {
		if y > maxY {
			maxY = y
		}
	}
	if maxY < yTolerance {
		return svg
	}

	newHeight := int(math.Ceil(maxY))
	translateY := (float64(newHeight) - maxY) / 2
	group := fmt.Sprintf(`<g transform="translate(0, %s)">`,
		strconv.FormatFloat(translateY, 'f', -1, 64))

	var b strings.Builder
	b.Grow(len(svg) + len(group) + 8)
	inSVG := false
	groupOpen := false
	closed := false

	i := 0
	for i < len(svg) {
		lt := strings.IndexByte(svg[i:], '<')
		if lt < 0 {
			b.WriteString(svg[i:])
			break
		}
		b.WriteString(svg[i : i+lt])
		pos := i + lt

		raw, next, ok := readMarkup(svg, pos)
		if !ok {
			// Unterminated markup: pass the remainder through.
			b.WriteString(svg[pos:])
			break
		}
		switch {
		case isEndTag(raw):
			if inSVG && !closed && tagName(raw) == "svg" {
				if groupOpen {
					b.WriteString("</g>")
				}
				closed = true
			}
			b.WriteString(raw)
		case isElementTag(raw):
			if !inSVG && tagName(raw) == "svg" {
				inSVG = true
				b.WriteString(rewriteSVGTag(raw, newHeight))
			} else {
				if inSVG && !closed && !groupOpen {
					b.WriteString(group)
					groupOpen = true
				}
				b.WriteString(raw)
			}
		default:
			// Comments, processing instructions, doctype.
			b.WriteString(raw)
		}
		i = next
	}
	return b.String()
}

// readMarkup reads one markup construct beginning at pos (which must
// point at '<') and returns its raw text plus the index following it.
// Quoted attribute values may contain '>' and are skipped correctly.
func readMarkup(s string, pos int) (raw string, next int, ok bool) {
	rest := s[pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		end := strings.Index(rest, "-->")
		if end < 0 {
			return "", 0, false
		}
		return rest[:end+3], pos + end + 3, true
	case strings.HasPrefix(rest, "<?"):
		end := strings.Index(rest, "?>")
		if end < 0 {
			return "", 0, false
		}
		return rest[:end+2], pos + end + 2, true
	case strings.HasPrefix(rest, "<!"):
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return "", 0, false
		}
		return rest[:end+1], pos + end + 1, true
	default:
		end := indexTagEnd(s, pos)
		if end < 0 {
			return "", 0, false
		}
		return s[pos : end+1], end + 1, true
	}
}

func isEndTag(raw string) bool {
	return strings.HasPrefix(raw, "</")
}

// isElementTag reports whether raw is a start or self-closing tag, as
// opposed to a comment, processing instruction or doctype. Both forms
// mark the point where the wrapping group must open.
func isElementTag(raw string) bool {
	return len(raw) > 1 && raw[0] == '<' && raw[1] != '!' && raw[1] != '?' && raw[1] != '/'
}

// tagName returns the element name of a start, end or self-closing tag.
func tagName(raw string) string {
	i := 1
	if strings.HasPrefix(raw, "</") {
		i = 2
	}
	j := i
	for j < len(raw) {
		ch := raw[j]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '>' || ch == '/' {
			break
		}
		j++
	}
	return raw[i:j]
}

// rewriteSVGTag rebuilds the root open tag: the height attribute is
// dropped and re-appended with the corrected value, the fourth viewBox
// component is replaced, everything else passes through in order.
func rewriteSVGTag(raw string, newHeight int) string {
	attrs := parseAttrs(raw)
	var b strings.Builder
	b.WriteString("<svg")
	for _, a := range attrs {
		if a.name == "height" {
			continue
		}
		if a.name == "viewBox" {
			parts := strings.Fields(a.value)
			if len(parts) == 4 {
				parts[3] = strconv.Itoa(newHeight)
				a.value = strings.Join(parts, " ")
			}
		}
		fmt.Fprintf(&b, ` %s="%s"`, a.name, a.value)
	}
	fmt.Fprintf(&b, ` height="%d">`, newHeight)
	return b.String()
}

type attr struct {
	name  string
	value string
}

// parseAttrs reads the attributes of an open tag. Values must be
// quoted; bare attributes are kept with an empty value.
func parseAttrs(raw string) []attr {
	var attrs []attr
	// Skip "<svg" (or any tag name).
	i := 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '>' {
		i++
	}
	for i < len(raw) {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] == '>' || raw[i] == '/' {
			break
		}
		nameStart := i
		for i < len(raw) && raw[i] != '=' && !isSpace(raw[i]) && raw[i] != '>' {
			i++
		}
		name := raw[nameStart:i]
		if i >= len(raw) || raw[i] != '=' {
			attrs = append(attrs, attr{name: name})
			continue
		}
		i++ // '='
		if i >= len(raw) || (raw[i] != '"' && raw[i] != '\'') {
			attrs = append(attrs, attr{name: name})
			continue
		}
		quote := raw[i]
		i++
		valStart := i
		for i < len(raw) && raw[i] != quote {
			i++
		}
		attrs = append(attrs, attr{name: name, value: raw[valStart:i]})
		if i < len(raw) {
			i++ // closing quote
		}
	}
	return attrs
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
