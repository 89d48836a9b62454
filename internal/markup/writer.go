package markup

import (
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// SummaryMarker is the literal paragraph content that splits a document into
// its summary and rest parts. The marker paragraph itself is not rendered.
const SummaryMarker = "-more-"

type footnoteState uint8

const (
	footnoteMissing footnoteState = iota
	footnoteDefined
)

// footnoteEntry accumulates one footnote's rendered definition. Numbers are
// assigned in first-touch order, whether the touch is a reference or a
// definition.
type footnoteEntry struct {
	number int
	state  footnoteState
	buf    strings.Builder
}

// writer renders a markup stream to HTML in a single forward pass. It owns
// the cross-document state: the footnote registry, the list-tightness stack
// and the current write target. One writer renders one document.
type writer struct {
	logger *slog.Logger

	buf strings.Builder

	// fn is non-nil while writes are redirected into a footnote definition.
	fn *footnoteEntry

	listTightness []bool

	footnotes map[string]*footnoteEntry

	// splitAt is the byte offset in buf where the summary ends, or -1.
	splitAt int
}

func newWriter(logger *slog.Logger) *writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &writer{
		logger:    logger,
		footnotes: make(map[string]*footnoteEntry),
		splitAt:   -1,
	}
}

// WriteHTML consumes a markup stream and renders it to HTML. The output is
// split at the summary marker paragraph; without a marker, rest is empty.
func WriteHTML(src Stream, logger *slog.Logger) (summary, rest string, err error) {
	w := newWriter(logger)
	if err := w.run(newPeeker(src)); err != nil {
		return "", "", err
	}
	out := w.buf.String()
	if w.splitAt < 0 {
		return out, "", nil
	}
	return out[:w.splitAt], out[w.splitAt:], nil
}

func (w *writer) cur() *strings.Builder {
	if w.fn != nil {
		return &w.fn.buf
	}
	return &w.buf
}

func (w *writer) inTightList() bool {
	if len(w.listTightness) == 0 {
		return false
	}
	return w.listTightness[len(w.listTightness)-1]
}

func (w *writer) write(s string) {
	w.cur().WriteString(s)
}

// ensureNewline starts a new line unless the target already ends on one.
func (w *writer) ensureNewline() {
	buf := w.cur()
	if buf.Len() > 0 && buf.String()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
}

func (w *writer) writeOnNewLine(s string) {
	w.ensureNewline()
	w.write(s)
}

func (w *writer) tag(tag string, attrs Attributes, extras ...Attr) {
	writeTag(w.cur(), tag, attrs, extras...)
}

func (w *writer) tagOnNewLine(tag string, attrs Attributes, extras ...Attr) {
	w.ensureNewline()
	w.tag(tag, attrs, extras...)
}

// registerFootnoteReference returns the number for label, assigning the next
// free number on first touch.
func (w *writer) registerFootnoteReference(label string) int {
	if fn, ok := w.footnotes[label]; ok {
		return fn.number
	}
	fn := &footnoteEntry{number: len(w.footnotes) + 1}
	w.footnotes[label] = fn
	return fn.number
}

// registerFootnoteDefinition is registerFootnoteReference plus marking the
// label defined. Content under a duplicate definition appends to the
// existing buffer; the duplication is logged, not fixed up.
func (w *writer) registerFootnoteDefinition(label string) *footnoteEntry {
	fn, ok := w.footnotes[label]
	if !ok {
		fn = &footnoteEntry{number: len(w.footnotes) + 1}
		w.footnotes[label] = fn
	}
	if fn.state == footnoteDefined {
		w.logger.Warn("footnote defined multiple times", "label", label)
	}
	fn.state = footnoteDefined
	return fn
}

func (w *writer) run(src *peeker) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventStart:
			if ev.Container.Kind == Paragraph && w.fn == nil && w.consumeSummaryMarker(src) {
				continue
			}
			w.startTag(ev.Container, ev.Attrs)

		case EventEnd:
			w.endTag(ev.End)

		case EventStr:
			writeEscaped(w.cur(), ev.Text)

		case EventImage:
			// Plain rendition; the image pass replaces these events with
			// ready-made <img> markup when variants are known.
			w.tagOnNewLine("img", ev.Attrs,
				Attr{Key: "src", Value: ev.Destination},
				Attr{Key: "alt", Value: ev.Text},
			)

		case EventCodeBlock:
			// Plain rendition; the code pass replaces these events when a
			// highlighter is configured.
			w.tagOnNewLine("pre", ev.Attrs)
			w.writeOnNewLine("<code>")
			w.writeOnNewLine(escapeHTML(ev.Text))
			w.writeOnNewLine("</code>\n</pre>")

		case EventMath:
			// Source text fallback; the math pass replaces these events when
			// a math backend is configured.
			w.tagOnNewLine("span", ev.Attrs, Attr{Key: "class", Value: "math"})
			writeEscaped(w.cur(), ev.Text)
			w.write("</span>")

		case EventHtmlBlock:
			if ev.Attrs.IsEmpty() {
				w.writeOnNewLine(ev.Text)
			} else {
				w.tagOnNewLine("div", ev.Attrs)
				w.write(ev.Text)
				w.write("</div>\n")
			}

		case EventHtmlInline:
			if ev.Attrs.IsEmpty() {
				w.write(ev.Text)
			} else {
				w.tagOnNewLine("span", ev.Attrs)
				w.write(ev.Text)
				w.write("</span>\n")
			}

		case EventTagWithAttribute:
			w.tagOnNewLine(ev.Tag, ev.Attrs)

		case EventFootnoteReference:
			num := strconv.Itoa(w.registerFootnoteReference(ev.Label))
			w.write(`<sup class="footnote-reference">`)
			w.tag("a", Attributes{},
				Attr{Key: "role", Value: "doc-noteref"},
				Attr{Key: "href", Value: "#fn-" + num},
			)
			w.write(num)
			w.write("</a>")
			w.writeOnNewLine("</sup>")
		}
	}

	w.writeFootnoteSection()
	return nil
}

// consumeSummaryMarker checks whether the paragraph just opened holds
// exactly the summary marker. Parsers may deliver the marker text as
// several adjacent Str events, so the text accumulates until the paragraph
// closes or stops matching. On a match the whole paragraph is consumed and
// the split offset recorded; otherwise every looked-at event is pushed
// back.
func (w *writer) consumeSummaryMarker(src *peeker) bool {
	var consumed []Event
	text := ""
	for strings.HasPrefix(SummaryMarker, text) {
		ev, err := src.Next()
		if err != nil {
			break
		}
		consumed = append(consumed, ev)
		if ev.Kind == EventStr {
			text += ev.Text
			continue
		}
		if ev.Kind == EventEnd && ev.End.Kind == Paragraph && text == SummaryMarker {
			if w.splitAt < 0 {
				w.ensureNewline()
				w.splitAt = w.buf.Len()
			}
			return true
		}
		break
	}
	for i := len(consumed) - 1; i >= 0; i-- {
		src.unread(consumed[i])
	}
	return false
}

func (w *writer) startTag(c Container, attrs Attributes) {
	switch c.Kind {
	case Blockquote:
		w.tagOnNewLine("blockquote", attrs)

	case DescriptionList:
		w.tagOnNewLine("dl", attrs)
	case DescriptionTerm:
		w.tagOnNewLine("dt", attrs)
	case DescriptionDetails:
		w.tagOnNewLine("dd", attrs)

	case Section:
		w.tagOnNewLine("section", attrs, Attr{Key: "id", Value: c.ID})
	case Heading:
		w.tagOnNewLine(headingTag(c.Level), attrs)
		w.tag("a", Attributes{}, Attr{Key: "href", Value: "#" + c.ID})
	case Div:
		w.tagOnNewLine("div", attrs)
	case Paragraph:
		if !w.inTightList() {
			w.tagOnNewLine("p", attrs)
		}

	case Link:
		// Links are inline; never force a line break before them.
		w.tag("a", attrs, Attr{Key: "href", Value: c.Destination})

	case List:
		w.listTightness = append(w.listTightness, c.Tight)
		switch c.ListKind.Type {
		case ListUnordered:
			w.tagOnNewLine("ul", attrs)
		case ListOrdered:
			extras := make([]Attr, 0, 2)
			if t := numberingType(c.ListKind.Numbering); t != "" {
				extras = append(extras, Attr{Key: "type", Value: t})
			}
			if c.ListKind.Start != 1 {
				extras = append(extras, Attr{Key: "start", Value: strconv.FormatUint(c.ListKind.Start, 10)})
			}
			w.tagOnNewLine("ol", attrs, extras...)
		case ListTask:
			w.tagOnNewLine("ul", attrs, Attr{Key: "class", Value: "task-list"})
		}
	case ListItem:
		w.tagOnNewLine("li", attrs)
	case TaskListItem:
		class, checked := "unchecked", "false"
		if c.Checked {
			class, checked = "checked", "true"
		}
		w.tagOnNewLine("li", attrs,
			Attr{Key: "class", Value: class},
			Attr{Key: "data-checked", Value: checked},
		)

	case Table:
		w.tagOnNewLine("table", attrs)
	case TableHead:
		w.tagOnNewLine("thead", attrs)
	case TableBody:
		w.tagOnNewLine("tbody", attrs)
	case TableRow:
		w.tagOnNewLine("tr", attrs)
	case TableCell:
		tag := "td"
		if c.Head {
			tag = "th"
		}
		var style []Attr
		switch c.Alignment {
		case AlignLeft:
			style = []Attr{{Key: "style", Value: "text-align: left;"}}
		case AlignCenter:
			style = []Attr{{Key: "style", Value: "text-align: center;"}}
		case AlignRight:
			style = []Attr{{Key: "style", Value: "text-align: right;"}}
		}
		w.tagOnNewLine(tag, Attributes{}, style...)

	case Footnote:
		fn := w.registerFootnoteDefinition(c.Label)
		w.fn = fn
		w.tagOnNewLine("li", attrs,
			Attr{Key: "class", Value: "footnote-definition"},
			Attr{Key: "id", Value: "fn-" + strconv.Itoa(fn.number)},
			Attr{Key: "role", Value: "doc-footnote"},
		)

	case Other:
		// Other tags are inline; never force a line break before them.
		w.tag(c.Tag, attrs)
	}
}

func (w *writer) endTag(c ContainerEnd) {
	switch c.Kind {
	case Blockquote:
		w.write("</blockquote>")

	case DescriptionList:
		w.writeOnNewLine("</dl>\n")
	case DescriptionTerm:
		w.write("</dt>")
	case DescriptionDetails:
		w.write("</dd>")

	case Heading:
		w.write("</a></" + headingTag(c.Level) + ">\n")
	case Section:
		w.write("</section>\n")
	case Div:
		w.write("</div>\n")
	case Paragraph:
		if !w.inTightList() {
			w.write("</p>\n")
		}

	case Link:
		w.write("</a>")

	case List:
		if n := len(w.listTightness); n > 0 {
			w.listTightness = w.listTightness[:n-1]
		}
		if c.ListKind.Type == ListOrdered {
			w.write("</ol>\n")
		} else {
			w.write("</ul>\n")
		}
	case ListItem, TaskListItem:
		w.write("</li>\n")

	case Table:
		w.write("</table>\n")
	case TableHead:
		w.write("</thead>\n")
	case TableBody:
		w.write("</tbody>\n")
	case TableRow:
		w.write("</tr>\n")
	case TableCell:
		if c.Head {
			w.write("</th>\n")
		} else {
			w.write("</td>\n")
		}

	case Footnote:
		w.writeOnNewLine("</li>\n")
		w.fn = nil

	case Other:
		w.write("</" + c.Tag + ">")
	}
}

// writeFootnoteSection emits the end-of-document footnote list. Footnotes
// appear in ascending number order; a referenced but undefined label renders
// an empty placeholder so numbering stays contiguous and no anchor dangles.
func (w *writer) writeFootnoteSection() {
	if len(w.footnotes) == 0 {
		return
	}

	w.write("<hr>\n<aside class=\"footnotes\" role=\"doc-endnotes\">\n<ol>\n")

	ordered := make([]*footnoteEntry, 0, len(w.footnotes))
	labels := make(map[*footnoteEntry]string, len(w.footnotes))
	for label, fn := range w.footnotes {
		ordered = append(ordered, fn)
		labels[fn] = label
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].number < ordered[j].number })

	for _, fn := range ordered {
		if fn.state == footnoteDefined {
			w.write(fn.buf.String())
			continue
		}
		w.logger.Warn("footnote definition missing", "label", labels[fn])
		w.tagOnNewLine("li", Attributes{},
			Attr{Key: "class", Value: "footnote-definition"},
			Attr{Key: "id", Value: "fn-" + strconv.Itoa(fn.number)},
			Attr{Key: "role", Value: "doc-footnote"},
		)
		w.write("</li>\n")
	}

	w.write("</ol>\n</aside>\n")
}

func headingTag(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h2"
	case 3:
		return "h3"
	case 4:
		return "h4"
	case 5:
		return "h5"
	default:
		return "h6"
	}
}

// numberingType returns the ol type attribute value, empty for decimal.
func numberingType(n Numbering) string {
	switch n {
	case AlphaLower:
		return "a"
	case AlphaUpper:
		return "A"
	case RomanLower:
		return "i"
	case RomanUpper:
		return "I"
	default:
		return ""
	}
}
