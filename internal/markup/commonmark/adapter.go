// Package commonmark parses CommonMark (with GFM extensions, footnotes and
// typographic punctuation) into the canonical markup event stream.
//
// The goldmark AST walk normalizes the CommonMark document model to the
// shared vocabulary: headings open nested sections, tight list items drop
// their paragraph wrappers through list tightness, and GFM tables split
// into an explicit head and body.
package commonmark

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/tomcur/sprokkel/internal/markup"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
)

// Parse converts a CommonMark document into the canonical event stream.
func Parse(source []byte) []markup.Event {
	doc := md.Parser().Parse(text.NewReader(source))
	c := &converter{source: source}
	c.walk(doc)
	return c.events
}

// typographicEntities maps the raw entity substitutions the typographer
// produces to their literal characters, so smart punctuation is plain text
// in the stream rather than raw HTML.
var typographicEntities = map[string]string{
	"&lsquo;":  "‘",
	"&rsquo;":  "’",
	"&ldquo;":  "“",
	"&rdquo;":  "”",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&hellip;": "…",
}

type converter struct {
	source []byte
	events []markup.Event

	// sections holds the levels of the currently open sections,
	// outermost first.
	sections []int

	// table traversal state; valid while inside a table
	alignments []east.Alignment
	cellIndex  int
	inHead     bool
	bodyOpen   bool

	// trimLeadingSpace strips one space from the next text node, right
	// after a task checkbox.
	trimLeadingSpace bool
}

type frame struct {
	node    ast.Node
	exiting bool
}

func (c *converter) walk(doc ast.Node) {
	stack := []frame{{node: doc}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exiting {
			c.exit(f.node)
			continue
		}
		descend := c.enter(f.node)
		stack = append(stack, frame{node: f.node, exiting: true})
		if !descend {
			continue
		}
		for child := f.node.LastChild(); child != nil; child = child.PreviousSibling() {
			stack = append(stack, frame{node: child})
		}
	}
}

func (c *converter) emit(ev markup.Event) {
	c.events = append(c.events, ev)
}

func (c *converter) str(s string) {
	if s != "" {
		c.emit(markup.Str(s))
	}
}

func (c *converter) start(container markup.Container, attrs markup.Attributes) {
	c.emit(markup.Start(container, attrs))
}

func (c *converter) end(end markup.ContainerEnd) {
	c.emit(markup.End(end))
}

func (c *converter) startOther(tag string, attrs markup.Attributes) {
	c.start(markup.Container{Kind: markup.Other, Tag: tag}, attrs)
}

func (c *converter) endOther(tag string) {
	c.end(markup.ContainerEnd{Kind: markup.Other, Tag: tag})
}

// enter translates a node's opening and reports whether to walk into its
// children.
func (c *converter) enter(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.Document:
		return true

	case *ast.Heading:
		c.enterHeading(n)
		return true

	case *ast.Paragraph:
		c.start(markup.Container{Kind: markup.Paragraph}, nodeAttributes(n))
		return true
	case *ast.TextBlock:
		// Tight list item content; the writer drops the wrapper whenever
		// the enclosing list is tight.
		c.start(markup.Container{Kind: markup.Paragraph}, markup.Attributes{})
		return true

	case *ast.Blockquote:
		c.start(markup.Container{Kind: markup.Blockquote}, nodeAttributes(n))
		return true

	case *ast.List:
		c.enterList(n)
		return true
	case *ast.ListItem:
		c.enterListItem(n)
		return true
	case *east.TaskCheckBox:
		// Consumed by the enclosing list item.
		c.trimLeadingSpace = true
		return false

	case *ast.FencedCodeBlock:
		c.emit(markup.CodeBlock(
			string(n.Language(c.source)),
			linesValue(n, c.source),
			markup.Attributes{},
		))
		return false
	case *ast.CodeBlock:
		c.emit(markup.CodeBlock("", linesValue(n, c.source), markup.Attributes{}))
		return false

	case *ast.ThematicBreak:
		c.emit(markup.TagWithAttribute("hr", markup.Attributes{}))
		return false

	case *ast.Text:
		value := string(n.Segment.Value(c.source))
		if c.trimLeadingSpace {
			value = strings.TrimPrefix(value, " ")
			c.trimLeadingSpace = false
		}
		c.str(value)
		if n.HardLineBreak() {
			c.emit(markup.HtmlInline("<br />", markup.Attributes{}))
			c.str("\n")
		} else if n.SoftLineBreak() {
			c.str("\n")
		}
		return false
	case *ast.String:
		c.enterString(n)
		return false

	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		c.startOther(tag, markup.Attributes{})
		return true
	case *east.Strikethrough:
		c.startOther("del", markup.Attributes{})
		return true

	case *ast.CodeSpan:
		c.startOther("code", markup.Attributes{})
		return true

	case *ast.Link:
		c.start(markup.Container{
			Kind:        markup.Link,
			Destination: string(n.Destination),
		}, nodeAttributes(n))
		return true
	case *ast.AutoLink:
		c.enterAutoLink(n)
		return false
	case *ast.Image:
		c.emit(markup.Image(string(n.Destination), subtreeText(n, c.source), markup.Attributes{}))
		return false

	case *ast.HTMLBlock:
		c.emit(markup.HtmlBlock(htmlBlockValue(n, c.source), markup.Attributes{}))
		return false
	case *ast.RawHTML:
		c.emit(markup.HtmlInline(segmentsValue(n.Segments, c.source), markup.Attributes{}))
		return false

	case *east.Table:
		c.alignments = n.Alignments
		c.cellIndex = 0
		c.inHead = false
		c.bodyOpen = false
		c.start(markup.Container{Kind: markup.Table}, nodeAttributes(n))
		return true
	case *east.TableHeader:
		c.inHead = true
		c.cellIndex = 0
		c.start(markup.Container{Kind: markup.TableHead}, markup.Attributes{})
		c.start(markup.Container{Kind: markup.TableRow}, markup.Attributes{})
		return true
	case *east.TableRow:
		if !c.bodyOpen {
			c.bodyOpen = true
			c.start(markup.Container{Kind: markup.TableBody}, markup.Attributes{})
		}
		c.cellIndex = 0
		c.start(markup.Container{Kind: markup.TableRow}, markup.Attributes{})
		return true
	case *east.TableCell:
		c.start(markup.Container{
			Kind:      markup.TableCell,
			Head:      c.inHead,
			Alignment: cellAlignment(c.alignments, c.cellIndex),
		}, markup.Attributes{})
		c.cellIndex++
		return true

	case *east.FootnoteLink:
		c.emit(markup.FootnoteReference(strconv.Itoa(n.Index)))
		return false
	case *east.Footnote:
		c.start(markup.Container{
			Kind:  markup.Footnote,
			Label: strconv.Itoa(n.Index),
		}, markup.Attributes{})
		return true
	case *east.FootnoteList:
		// The writer renders its own footnote section.
		return true
	case *east.FootnoteBacklink:
		return false

	default:
		return true
	}
}

func (c *converter) exit(node ast.Node) {
	switch n := node.(type) {
	case *ast.Document:
		c.closeSections(0)

	case *ast.Heading:
		c.end(markup.ContainerEnd{Kind: markup.Heading, Level: n.Level})

	case *ast.Paragraph, *ast.TextBlock:
		c.end(markup.ContainerEnd{Kind: markup.Paragraph})

	case *ast.Blockquote:
		c.end(markup.ContainerEnd{Kind: markup.Blockquote})

	case *ast.List:
		c.end(markup.ContainerEnd{Kind: markup.List, ListKind: listKind(n)})
	case *ast.ListItem:
		kind := markup.ListItem
		if itemCheckBox(n) != nil {
			kind = markup.TaskListItem
		}
		c.end(markup.ContainerEnd{Kind: kind})

	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		c.endOther(tag)
	case *east.Strikethrough:
		c.endOther("del")
	case *ast.CodeSpan:
		c.endOther("code")

	case *ast.Link:
		c.end(markup.ContainerEnd{Kind: markup.Link})

	case *east.Table:
		if c.bodyOpen {
			c.end(markup.ContainerEnd{Kind: markup.TableBody})
		}
		c.end(markup.ContainerEnd{Kind: markup.Table})
		c.alignments = nil
	case *east.TableHeader:
		c.end(markup.ContainerEnd{Kind: markup.TableRow})
		c.end(markup.ContainerEnd{Kind: markup.TableHead})
		c.inHead = false
	case *east.TableRow:
		c.end(markup.ContainerEnd{Kind: markup.TableRow})
	case *east.TableCell:
		c.end(markup.ContainerEnd{Kind: markup.TableCell, Head: c.inHead})

	case *east.Footnote:
		c.end(markup.ContainerEnd{Kind: markup.Footnote})
	}
}

// enterHeading opens the section nesting for a heading: every open section
// at the same or a deeper level closes first, then a new section opens
// carrying the heading's id.
func (c *converter) enterHeading(n *ast.Heading) {
	c.closeSections(n.Level)
	c.sections = append(c.sections, n.Level)

	id := headingID(n)
	attrs := nodeAttributes(n)
	attrs.Delete("id")

	c.start(markup.Container{Kind: markup.Section, ID: id}, markup.Attributes{})
	c.start(markup.Container{Kind: markup.Heading, Level: n.Level, ID: id}, attrs)
}

// closeSections closes open sections until every remaining one is
// shallower than level. Level 0 closes everything.
func (c *converter) closeSections(level int) {
	for len(c.sections) > 0 && c.sections[len(c.sections)-1] >= level {
		c.sections = c.sections[:len(c.sections)-1]
		c.end(markup.ContainerEnd{Kind: markup.Section})
	}
}

func (c *converter) enterList(n *ast.List) {
	kind := listKind(n)
	if item, ok := n.FirstChild().(*ast.ListItem); ok && itemCheckBox(item) != nil {
		kind.Type = markup.ListTask
	}
	c.start(markup.Container{
		Kind:     markup.List,
		ListKind: kind,
		Tight:    n.IsTight,
	}, nodeAttributes(n))
}

func (c *converter) enterListItem(n *ast.ListItem) {
	box := itemCheckBox(n)
	if box == nil {
		c.start(markup.Container{Kind: markup.ListItem}, markup.Attributes{})
		return
	}
	c.start(markup.Container{
		Kind:    markup.TaskListItem,
		Checked: box.IsChecked,
	}, markup.Attributes{})
}

func (c *converter) enterString(n *ast.String) {
	value := string(n.Value)
	if literal, ok := typographicEntities[value]; ok {
		c.str(literal)
		return
	}
	if n.IsRaw() {
		c.emit(markup.HtmlInline(value, markup.Attributes{}))
		return
	}
	c.str(value)
}

func (c *converter) enterAutoLink(n *ast.AutoLink) {
	url := string(n.URL(c.source))
	label := string(n.Label(c.source))
	destination := url
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
		destination = "mailto:" + url
	}
	c.start(markup.Container{Kind: markup.Link, Destination: destination}, markup.Attributes{})
	c.str(label)
	c.end(markup.ContainerEnd{Kind: markup.Link})
}

// ---------------------------------------------------------------------------
// goldmark helpers
// ---------------------------------------------------------------------------

func listKind(n *ast.List) markup.ListKind {
	if !n.IsOrdered() {
		return markup.ListKind{Type: markup.ListUnordered}
	}
	return markup.ListKind{
		Type:  markup.ListOrdered,
		Start: uint64(n.Start),
	}
}

// itemCheckBox returns the task checkbox of a list item, or nil. The
// checkbox sits as the first inline of the item's first block.
func itemCheckBox(item *ast.ListItem) *east.TaskCheckBox {
	block := item.FirstChild()
	if block == nil {
		return nil
	}
	box, _ := block.FirstChild().(*east.TaskCheckBox)
	return box
}

func headingID(n *ast.Heading) string {
	if value, ok := n.AttributeString("id"); ok {
		switch v := value.(type) {
		case []byte:
			return string(v)
		case string:
			return v
		}
	}
	return ""
}

// nodeAttributes converts user-written block attributes, e.g. from
// `{#id .class}` syntax enabled by parser.WithAttribute.
func nodeAttributes(node ast.Node) markup.Attributes {
	var attrs markup.Attributes
	for _, attr := range node.Attributes() {
		name := string(attr.Name)
		switch v := attr.Value.(type) {
		case []byte:
			attrs.Set(name, string(v))
		case string:
			attrs.Set(name, v)
		}
	}
	return attrs
}

func cellAlignment(alignments []east.Alignment, index int) markup.Alignment {
	if index >= len(alignments) {
		return markup.AlignUnspecified
	}
	switch alignments[index] {
	case east.AlignLeft:
		return markup.AlignLeft
	case east.AlignCenter:
		return markup.AlignCenter
	case east.AlignRight:
		return markup.AlignRight
	default:
		return markup.AlignUnspecified
	}
}

func linesValue(node ast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func htmlBlockValue(n *ast.HTMLBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	if n.HasClosure() {
		b.Write(n.ClosureLine.Value(source))
	}
	return b.String()
}

func segmentsValue(segments *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// subtreeText flattens a node's descendant text, used for image alt text.
func subtreeText(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
		case *ast.String:
			b.Write(n.Value)
		default:
			b.WriteString(subtreeText(child, source))
		}
	}
	return b.String()
}
