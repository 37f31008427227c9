// Package mathml converts LaTeX formulas to MathML without the native
// engine. It is the degraded output path for builds that do not link
// MicroTeX; the result is markup for browsers to lay out, not
// pre-rendered SVG.
package mathml

import (
	"bytes"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
)

// FromLaTeX converts a LaTeX formula to display-math MathML markup.
func FromLaTeX(latex string) (string, error) {
	// Wrap in display math delimiters for goldmark processing.
	source := "$$" + latex + "$$"

	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
