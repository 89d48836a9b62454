package markup

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// CodePass rewrites CodeBlock events into highlighted HTML. Blocks without a
// real language, and blocks whose language the highlighter does not know,
// render as escaped plaintext; the latter case is logged. Any other
// highlighter failure aborts the render.
func CodePass(highlighter Highlighter, logger *slog.Logger) Pass {
	if logger == nil {
		logger = slog.Default()
	}
	return func(src Stream) Stream {
		return &codePass{src: src, highlighter: highlighter, logger: logger}
	}
}

type codePass struct {
	src         Stream
	highlighter Highlighter
	logger      *slog.Logger
	err         error
}

func (p *codePass) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	ev, err := p.src.Next()
	if err != nil {
		p.err = err
		return Event{}, err
	}
	if ev.Kind != EventCodeBlock {
		return ev, nil
	}
	out, err := p.rewrite(ev)
	if err != nil {
		p.err = err
		return Event{}, err
	}
	return out, nil
}

func (p *codePass) rewrite(ev Event) (Event, error) {
	if p.highlighter == nil || isPlainLanguage(ev.Language) {
		return plainCodeBlock(ev), nil
	}

	highlighted, err := p.highlighter.Highlight(ev.Text, ev.Language)
	if errors.Is(err, ErrUnknownLanguage) {
		p.logger.Warn("no highlight grammar for language, rendering plain", "language", ev.Language)
		var h htmlBuilder
		h.tag("pre", ev.Attrs, Attr{Key: "class", Value: "highlight"})
		h.tagOnNewLine("code", Attributes{}, Attr{Key: "data-lang", Value: ev.Language})
		h.onNewLine(escapeHTML(ev.Text))
		h.onNewLine("</code>\n</pre>")
		return HtmlBlock(h.String(), Attributes{}), nil
	}
	if err != nil {
		return Event{}, fmt.Errorf("%w: language %q: %v", ErrHighlight, ev.Language, err)
	}

	var h htmlBuilder
	h.tag("pre", ev.Attrs, Attr{Key: "class", Value: "highlight"})
	h.tagOnNewLine("code", Attributes{}, Attr{Key: "data-lang", Value: ev.Language})
	h.onNewLine(highlighted)
	h.onNewLine("</code>\n</pre>")
	return HtmlBlock(h.String(), Attributes{}), nil
}

func plainCodeBlock(ev Event) Event {
	var h htmlBuilder
	h.tag("pre", ev.Attrs)
	h.onNewLine("<code>")
	h.onNewLine(escapeHTML(ev.Text))
	h.onNewLine("</code>\n</pre>")
	return HtmlBlock(h.String(), Attributes{})
}

func isPlainLanguage(language string) bool {
	switch strings.ToLower(language) {
	case "", "plain", "text", "plaintext":
		return true
	}
	return false
}
