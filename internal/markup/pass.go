package markup

import "strings"

// Pass is a composable streaming rewrite of a markup event sequence. A pass
// pulls lazily from its upstream stream; the first error it yields
// terminates the whole pipeline.
type Pass func(Stream) Stream

// Compose chains passes left to right over src: the first pass reads from
// src, each following pass reads the previous pass's output.
func Compose(src Stream, passes ...Pass) Stream {
	for _, pass := range passes {
		src = pass(src)
	}
	return src
}

// Highlighter turns source code into highlighted HTML. Implementations
// return ErrUnknownLanguage (possibly wrapped) when they carry no grammar
// for the language; the code pass treats that as non-fatal.
type Highlighter interface {
	Highlight(code, language string) (string, error)
}

// MathRenderer converts LaTeX source into math markup (MathML).
type MathRenderer interface {
	Render(src string, kind MathKind) (string, error)
}

// ImageVariants describes the output files available for one source image.
// The downscaled variants are present only when they were actually produced.
type ImageVariants struct {
	Original      string
	OriginalWidth int // zero when the original could not be decoded
	Width1536     string
	Width768      string
}

// htmlBuilder assembles raw HTML fragments for passes with the same
// newline discipline the writer uses.
type htmlBuilder struct {
	b strings.Builder
}

func (h *htmlBuilder) raw(s string) {
	h.b.WriteString(s)
}

func (h *htmlBuilder) ensureNewline() {
	if h.b.Len() > 0 && h.b.String()[h.b.Len()-1] != '\n' {
		h.b.WriteByte('\n')
	}
}

func (h *htmlBuilder) onNewLine(s string) {
	h.ensureNewline()
	h.b.WriteString(s)
}

func (h *htmlBuilder) escaped(s string) {
	writeEscaped(&h.b, s)
}

func (h *htmlBuilder) tag(tag string, attrs Attributes, extras ...Attr) {
	writeTag(&h.b, tag, attrs, extras...)
}

func (h *htmlBuilder) tagOnNewLine(tag string, attrs Attributes, extras ...Attr) {
	h.ensureNewline()
	h.tag(tag, attrs, extras...)
}

func (h *htmlBuilder) String() string {
	return h.b.String()
}
