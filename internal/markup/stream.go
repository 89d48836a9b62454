package markup

import (
	"io"
	"strings"
)

// Stream is a lazy sequence of markup events. Next returns io.EOF once the
// sequence is exhausted; any other error terminates the stream and is
// returned again on subsequent calls.
type Stream interface {
	Next() (Event, error)
}

// Events returns a Stream over an event slice.
func Events(events []Event) Stream {
	return &sliceStream{events: events}
}

type sliceStream struct {
	events []Event
	idx    int
}

func (s *sliceStream) Next() (Event, error) {
	if s.idx >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.idx]
	s.idx++
	return ev, nil
}

// Collect drains a stream into a slice.
func Collect(src Stream) ([]Event, error) {
	var events []Event
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}

// peeker wraps a stream with pushback, giving non-destructive lookahead to
// the writer and the rewrite passes.
type peeker struct {
	src     Stream
	pending []Event
}

func newPeeker(src Stream) *peeker {
	return &peeker{src: src}
}

func (p *peeker) Next() (Event, error) {
	if n := len(p.pending); n > 0 {
		ev := p.pending[n-1]
		p.pending = p.pending[:n-1]
		return ev, nil
	}
	return p.src.Next()
}

// unread pushes an event back; the next call to Next returns it first.
// Multiple pushed events come back in LIFO order.
func (p *peeker) unread(ev Event) {
	p.pending = append(p.pending, ev)
}

// spanStream yields the events between a container start and its matching
// end. The depth counter is explicit; nesting costs no extra memory.
type spanStream struct {
	src   Stream
	depth int
	// inclusive keeps the boundary Start/End events in the yielded
	// sub-stream.
	inclusive bool
	done      bool
}

// Span returns the sub-stream of src positioned immediately after a consumed
// Start event. It yields every event up to, but excluding, the matching End,
// consuming that End from src. It pulls no further, so the caller can resume
// consuming src directly afterwards.
func Span(src Stream) Stream {
	return &spanStream{src: src, depth: 1}
}

// SpanAt returns the sub-stream of src positioned at an as-yet-unconsumed
// Start event. As if a synthetic wrapper pair enclosed the container, the
// Start, its contents and the matching End are all yielded, and nothing
// beyond.
func SpanAt(src Stream) Stream {
	return &spanStream{src: src, inclusive: true}
}

func (s *spanStream) Next() (Event, error) {
	if s.done {
		return Event{}, io.EOF
	}
	ev, err := s.src.Next()
	if err != nil {
		s.done = true
		return Event{}, err
	}
	switch ev.Kind {
	case EventStart:
		s.depth++
	case EventEnd:
		s.depth--
		if s.depth == 0 {
			s.done = true
			if s.inclusive {
				return ev, nil
			}
			return Event{}, io.EOF
		}
	}
	return ev, nil
}

// drainText consumes a stream and concatenates its textual leaf events,
// dropping formatting. Used to flatten container bodies into alt text and
// similar single-string values.
func drainText(src Stream) (string, error) {
	var b strings.Builder
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		if ev.Kind == EventStr {
			b.WriteString(ev.Text)
		}
	}
}
