// Package mathml converts LaTeX math to MathML for inline embedding.
package mathml

import (
	"strings"

	"git.sr.ht/~mekyt/latex2mathml"

	"github.com/tomcur/sprokkel/internal/markup"
)

// Renderer converts LaTeX source to MathML. It is stateless and safe for
// concurrent use.
type Renderer struct{}

var _ markup.MathRenderer = Renderer{}

// Render converts src to MathML, marking display math as block-level.
func (Renderer) Render(src string, kind markup.MathKind) (string, error) {
	out := latex2mathml.Convert(src, "http://www.w3.org/1998/Math/MathML", "inline", 0)
	return setDisplay(out, kind == markup.MathDisplay), nil
}

// setDisplay forces the display attribute on the root math element so the
// block/inline distinction survives regardless of converter defaults.
func setDisplay(mathml string, display bool) string {
	idx := strings.Index(mathml, "<math")
	if idx < 0 {
		return mathml
	}
	end := strings.IndexByte(mathml[idx:], '>')
	if end < 0 {
		return mathml
	}
	openTag := mathml[idx : idx+end]

	mode := "inline"
	if display {
		mode = "block"
	}
	if cut := strings.Index(openTag, ` display="`); cut >= 0 {
		rest := openTag[cut+len(` display="`):]
		closing := strings.IndexByte(rest, '"')
		if closing >= 0 {
			openTag = openTag[:cut] + openTag[cut+len(` display="`)+closing+1:]
		}
	}
	openTag += ` display="` + mode + `"`

	return mathml[:idx] + openTag + mathml[idx+end:]
}
