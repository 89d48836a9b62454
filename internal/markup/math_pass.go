package markup

import "fmt"

// MathPass rewrites Math events through the given backend. A nil backend
// makes the pass a pure passthrough; a backend failure aborts the render.
func MathPass(renderer MathRenderer) Pass {
	return func(src Stream) Stream {
		return &mathPass{src: src, renderer: renderer}
	}
}

type mathPass struct {
	src      Stream
	renderer MathRenderer
	err      error
}

func (p *mathPass) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	ev, err := p.src.Next()
	if err != nil {
		p.err = err
		return Event{}, err
	}
	if ev.Kind != EventMath || p.renderer == nil {
		return ev, nil
	}

	rendered, err := p.renderer.Render(ev.Text, ev.MathKind)
	if err != nil {
		p.err = fmt.Errorf("%w: %v", ErrMathRender, err)
		return Event{}, p.err
	}

	var h htmlBuilder
	h.tag("span", ev.Attrs, Attr{Key: "class", Value: "math"})
	h.raw(rendered)
	h.raw("</span>")
	return HtmlBlock(h.String(), Attributes{}), nil
}
