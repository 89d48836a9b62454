package markup

// FigurePass promotes a Div whose class is exactly "figure" to a <figure>
// element. When the last child of such a div is a caption container, the
// caption content moves into a <figcaption>; the check needs a single event
// of lookahead after draining the caption span.
func FigurePass() Pass {
	return func(src Stream) Stream {
		return &figurePass{src: newPeeker(src)}
	}
}

type figurePass struct {
	src   *peeker
	queue []Event

	// figures records, innermost last, the nesting depth of every open
	// figure div so their End events can be rewritten.
	figures []int
	depth   int
	err     error
}

func (p *figurePass) Next() (Event, error) {
	if len(p.queue) > 0 {
		ev := p.queue[0]
		p.queue = p.queue[1:]
		return ev, nil
	}
	if p.err != nil {
		return Event{}, p.err
	}

	ev, err := p.src.Next()
	if err != nil {
		p.err = err
		return Event{}, err
	}

	switch ev.Kind {
	case EventStart:
		p.depth++
		if class, ok := ev.Attrs.Get("class"); ok && class == "figure" && ev.Container.Kind == Div {
			p.figures = append(p.figures, p.depth)
			attrs := ev.Attrs.Clone()
			attrs.Delete("class")
			var h htmlBuilder
			h.tag("figure", attrs)
			return HtmlBlock(h.String(), Attributes{}), nil
		}
		if p.inFigure() && p.figures[len(p.figures)-1] == p.depth-1 &&
			ev.Container.Kind == Other && ev.Container.Tag == "caption" {
			return p.rewriteCaption(ev)
		}
		return ev, nil

	case EventEnd:
		if p.inFigure() && p.figures[len(p.figures)-1] == p.depth {
			p.figures = p.figures[:len(p.figures)-1]
			p.depth--
			return HtmlBlock("</figure>\n", Attributes{}), nil
		}
		p.depth--
		return ev, nil

	default:
		return ev, nil
	}
}

func (p *figurePass) inFigure() bool {
	return len(p.figures) > 0
}

// rewriteCaption drains the caption span, then peeks one event: only a
// caption that is the figure's trailing child becomes a <figcaption>. A
// non-trailing caption is replayed untouched.
func (p *figurePass) rewriteCaption(start Event) (Event, error) {
	body, err := Collect(Span(p.src))
	if err != nil {
		p.err = err
		return Event{}, err
	}
	// the caption's start and end have both been consumed
	p.depth--

	next, err := p.src.Next()
	trailing := err == nil && next.Kind == EventEnd
	if err == nil {
		p.src.unread(next)
	}

	if !trailing {
		p.queue = append(p.queue, body...)
		p.queue = append(p.queue, End(start.Container.Closing()))
		return start, nil
	}

	var h htmlBuilder
	h.tag("figcaption", start.Attrs)
	p.queue = append(p.queue, body...)
	p.queue = append(p.queue, HtmlInline("</figcaption>", Attributes{}))
	return HtmlBlock(h.String(), Attributes{}), nil
}
