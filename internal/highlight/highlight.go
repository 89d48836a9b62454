// Package highlight renders source code to HTML using chroma lexers.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/tomcur/sprokkel/internal/markup"
)

// DefaultStyle is used when no style name is configured.
const DefaultStyle = "github"

// Chroma highlights code blocks with class-based markup, leaving the
// surrounding <pre> to the markup layer. It is safe for concurrent use.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

var _ markup.Highlighter = (*Chroma)(nil)

// New returns a highlighter using the named chroma style. An empty or
// unknown name falls back to DefaultStyle, then to chroma's fallback.
func New(styleName string) *Chroma {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Chroma{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight renders code as highlighted HTML. It reports
// markup.ErrUnknownLanguage when no lexer matches language.
func (h *Chroma) Highlight(code, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", markup.ErrUnknownLanguage, language)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenizing %s code: %w", language, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s code: %w", language, err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
