package markup

// Alignment is a table cell alignment.
type Alignment uint8

// Table cell alignments.
const (
	AlignUnspecified Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ListType distinguishes the three list flavors.
type ListType uint8

// List types.
const (
	ListUnordered ListType = iota
	ListOrdered
	ListTask
)

// Numbering is an ordered list numbering style.
type Numbering uint8

// Ordered list numbering styles.
const (
	Decimal Numbering = iota
	AlphaLower
	AlphaUpper
	RomanLower
	RomanUpper
)

// ListKind describes a list container. Numbering and Start are meaningful
// only for ordered lists.
type ListKind struct {
	Type      ListType
	Numbering Numbering
	Start     uint64
}

// MathKind distinguishes display math from inline math.
type MathKind uint8

// Math kinds.
const (
	MathDisplay MathKind = iota
	MathInline
)

// ContainerKind enumerates the closed set of container constructs.
type ContainerKind uint8

// Container kinds.
const (
	Blockquote ContainerKind = iota

	DescriptionList
	DescriptionTerm
	DescriptionDetails

	Heading
	Section
	Div
	Paragraph

	Link

	List
	ListItem
	TaskListItem

	Table
	TableHead
	TableBody
	TableRow
	TableCell

	Footnote

	// Other covers simple inline and block tags that need no writer state:
	// span, em, strong, code, sub, sup, ins, del, mark, caption.
	Other
)

// Container is the payload of a Start event. Only the fields relevant to
// Kind are meaningful.
type Container struct {
	Kind ContainerKind

	Level       int    // Heading
	ID          string // Heading, Section
	Destination string // Link
	ListKind    ListKind
	Tight       bool   // List
	Checked     bool   // TaskListItem
	Alignment   Alignment
	Head        bool   // TableCell
	Label       string // Footnote
	Tag         string // Other
}

// ContainerEnd is the payload of an End event. It carries only what is
// needed to close the container.
type ContainerEnd struct {
	Kind ContainerKind

	Level    int // Heading
	ListKind ListKind
	Head     bool   // TableCell
	Tag      string // Other
}

// Closing returns the ContainerEnd matching c.
func (c Container) Closing() ContainerEnd {
	return ContainerEnd{
		Kind:     c.Kind,
		Level:    c.Level,
		ListKind: c.ListKind,
		Head:     c.Head,
		Tag:      c.Tag,
	}
}

// EventKind enumerates the event vocabulary.
type EventKind uint8

// Event kinds. EventStart and EventEnd bracket containers; all other kinds
// are leaves with no matching end.
const (
	EventStart EventKind = iota
	EventEnd
	EventStr
	EventImage
	EventCodeBlock
	EventMath
	EventHtmlInline
	EventHtmlBlock
	EventTagWithAttribute
	EventFootnoteReference
)

// Event is one element of the canonical markup stream. Text carried by an
// event is unescaped except for HtmlInline/HtmlBlock content, which the
// writer copies verbatim.
type Event struct {
	Kind EventKind

	Container Container    // EventStart
	End       ContainerEnd // EventEnd
	Attrs     Attributes

	Text        string // Str, code, math source, raw HTML content, image alt
	Destination string // Image
	Language    string // CodeBlock
	MathKind    MathKind
	Tag         string // TagWithAttribute
	Label       string // FootnoteReference
}

// Start returns a container start event.
func Start(container Container, attrs Attributes) Event {
	return Event{Kind: EventStart, Container: container, Attrs: attrs}
}

// End returns a container end event.
func End(end ContainerEnd) Event {
	return Event{Kind: EventEnd, End: end}
}

// Str returns a text event.
func Str(text string) Event {
	return Event{Kind: EventStr, Text: text}
}

// Image returns an image leaf event.
func Image(destination, alt string, attrs Attributes) Event {
	return Event{Kind: EventImage, Destination: destination, Text: alt, Attrs: attrs}
}

// CodeBlock returns a code block leaf event.
func CodeBlock(language, code string, attrs Attributes) Event {
	return Event{Kind: EventCodeBlock, Language: language, Text: code, Attrs: attrs}
}

// Math returns a math leaf event.
func Math(kind MathKind, source string, attrs Attributes) Event {
	return Event{Kind: EventMath, MathKind: kind, Text: source, Attrs: attrs}
}

// HtmlInline returns a raw inline HTML event.
func HtmlInline(content string, attrs Attributes) Event {
	return Event{Kind: EventHtmlInline, Text: content, Attrs: attrs}
}

// HtmlBlock returns a raw block HTML event.
func HtmlBlock(content string, attrs Attributes) Event {
	return Event{Kind: EventHtmlBlock, Text: content, Attrs: attrs}
}

// TagWithAttribute returns a self-closing tag event, e.g. a thematic break.
func TagWithAttribute(tag string, attrs Attributes) Event {
	return Event{Kind: EventTagWithAttribute, Tag: tag, Attrs: attrs}
}

// FootnoteReference returns a footnote reference event.
func FootnoteReference(label string) Event {
	return Event{Kind: EventFootnoteReference, Label: label}
}
