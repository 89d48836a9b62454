// Package djot parses Djot documents into the canonical markup event
// stream.
//
// Djot is the primary authoring grammar: its sections, divs and attribute
// syntax map one to one onto the event vocabulary, so this adapter is
// mostly a tree walk. Math and raw HTML ride on verbatim nodes, keyed by
// their class and format attributes. Footnote syntax is not translated
// by the parser library; a document using it gets a warning and the note
// content renders inline at the definition site rather than being lost.
// The CommonMark grammar covers documents that need rendered footnotes.
package djot

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sivukhin/godjot/djot_parser"

	"github.com/tomcur/sprokkel/internal/markup"
)

// footnoteSyntax matches a Djot footnote definition at the start of a line.
var footnoteSyntax = regexp.MustCompile(`(?m)^\[\^[^\]\s]+\]:`)

// Parse converts a Djot document into the canonical event stream. The
// logger receives warnings about constructs the translation drops; nil
// means slog.Default.
func Parse(source []byte, logger *slog.Logger) []markup.Event {
	if logger == nil {
		logger = slog.Default()
	}
	if footnoteSyntax.Match(source) {
		logger.Warn("djot footnote definitions are not supported; their content renders in place")
	}
	ast := djot_parser.BuildDjotAst(source)
	c := &converter{logger: logger}
	for i := range ast {
		c.node(&ast[i])
	}
	return c.events
}

type converter struct {
	events []markup.Event
	logger *slog.Logger

	// sectionDepth is the current section nesting, which doubles as the
	// heading level: Djot headings sit directly inside their section.
	sectionDepth int

	// sectionIDs mirrors the open sections; headings anchor to the
	// innermost id when they carry none of their own.
	sectionIDs []string
}

func (c *converter) emit(ev markup.Event) {
	c.events = append(c.events, ev)
}

func (c *converter) children(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	for i := range node.Children {
		c.node(&node.Children[i])
	}
}

func (c *converter) wrap(node *djot_parser.TreeNode[djot_parser.DjotNode], container markup.Container) {
	c.emit(markup.Start(container, nodeAttributes(node)))
	c.children(node)
	c.emit(markup.End(container.Closing()))
}

func (c *converter) wrapOther(node *djot_parser.TreeNode[djot_parser.DjotNode], tag string) {
	c.wrap(node, markup.Container{Kind: markup.Other, Tag: tag})
}

func (c *converter) node(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	switch node.Type {
	case djot_parser.DocumentNode:
		c.children(node)

	case djot_parser.SectionNode:
		c.section(node)
	case djot_parser.HeadingNode:
		c.heading(node)

	case djot_parser.ParagraphNode:
		c.wrap(node, markup.Container{Kind: markup.Paragraph})
	case djot_parser.QuoteNode:
		c.wrap(node, markup.Container{Kind: markup.Blockquote})
	case djot_parser.DivNode:
		c.wrap(node, markup.Container{Kind: markup.Div})
	case djot_parser.SpanNode:
		c.wrapOther(node, "span")

	case djot_parser.TextNode:
		c.text(node)
	case djot_parser.SymbolsNode:
		c.emit(markup.Str(":" + nodeText(node) + ":"))
	case djot_parser.LineBreakNode:
		c.emit(markup.HtmlInline("<br />", markup.Attributes{}))
		c.emit(markup.Str("\n"))
	case djot_parser.ThematicBreakNode:
		c.emit(markup.TagWithAttribute("hr", nodeAttributes(node)))

	case djot_parser.EmphasisNode:
		c.wrapOther(node, "em")
	case djot_parser.StrongNode:
		c.wrapOther(node, "strong")
	case djot_parser.HighlightedNode:
		c.wrapOther(node, "mark")
	case djot_parser.SubscriptNode:
		c.wrapOther(node, "sub")
	case djot_parser.SuperscriptNode:
		c.wrapOther(node, "sup")
	case djot_parser.InsertNode:
		c.wrapOther(node, "ins")
	case djot_parser.DeleteNode:
		c.wrapOther(node, "del")

	case djot_parser.VerbatimNode:
		c.verbatim(node)

	case djot_parser.LinkNode:
		container := markup.Container{
			Kind:        markup.Link,
			Destination: attr(node, "href"),
		}
		attrs := nodeAttributes(node)
		attrs.Delete("href")
		c.emit(markup.Start(container, attrs))
		c.children(node)
		c.emit(markup.End(container.Closing()))
	case djot_parser.ImageNode:
		attrs := nodeAttributes(node)
		attrs.Delete("src")
		attrs.Delete("alt")
		c.emit(markup.Image(attr(node, "src"), imageAlt(node), attrs))

	case djot_parser.UnorderedListNode:
		c.list(node, markup.ListKind{Type: markup.ListUnordered})
	case djot_parser.OrderedListNode:
		c.list(node, orderedListKind(node))
	case djot_parser.ListItemNode:
		c.listItem(node)

	case djot_parser.DefinitionListNode:
		c.wrap(node, markup.Container{Kind: markup.DescriptionList})
	case djot_parser.DefinitionTermNode:
		c.wrap(node, markup.Container{Kind: markup.DescriptionTerm})
	case djot_parser.DefinitionItemNode:
		c.wrap(node, markup.Container{Kind: markup.DescriptionDetails})

	case djot_parser.TableNode:
		c.table(node)

	default:
		// Unknown constructs contribute their children, not their shape.
		c.logger.Warn("dropping the shape of an unsupported djot construct", "kind", node.Type)
		c.children(node)
	}
}

// section opens a section and bumps the depth that heading levels derive
// from. Djot documents nest sections structurally, so no level bookkeeping
// beyond the depth counter is needed.
func (c *converter) section(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	id := attr(node, "id")
	c.sectionDepth++
	c.sectionIDs = append(c.sectionIDs, id)
	c.emit(markup.Start(markup.Container{
		Kind: markup.Section,
		ID:   id,
	}, markup.Attributes{}))
	c.children(node)
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.Section}))
	c.sectionIDs = c.sectionIDs[:len(c.sectionIDs)-1]
	c.sectionDepth--
}

func (c *converter) heading(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	level := c.sectionDepth
	if level < 1 {
		level = 1
	}
	id := attr(node, "id")
	if id == "" && len(c.sectionIDs) > 0 {
		id = c.sectionIDs[len(c.sectionIDs)-1]
	}
	attrs := nodeAttributes(node)
	attrs.Delete("id")

	c.emit(markup.Start(markup.Container{Kind: markup.Heading, Level: level, ID: id}, attrs))
	c.children(node)
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.Heading, Level: level}))
}

func (c *converter) text(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	c.str(nodeText(node))
}

// str emits text, turning the non-breaking spaces Djot escapes produce into
// a literal entity so they survive any whitespace handling downstream.
func (c *converter) str(text string) {
	for {
		head, tail, found := strings.Cut(text, " ")
		if head != "" {
			c.emit(markup.Str(head))
		}
		if !found {
			return
		}
		c.emit(markup.HtmlInline("&nbsp;", markup.Attributes{}))
		text = tail
	}
}

// verbatim distinguishes the three uses of Djot verbatim syntax: math,
// raw passthrough (HTML only) and code.
func (c *converter) verbatim(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	class := attr(node, "class")
	text := nodeText(node)

	if strings.Contains(class, "math") {
		kind := markup.MathInline
		if strings.Contains(class, "display") {
			kind = markup.MathDisplay
		}
		attrs := nodeAttributes(node)
		attrs.Delete("class")
		c.emit(markup.Math(kind, text, attrs))
		return
	}

	if format := rawFormat(node); format != "" {
		if strings.EqualFold(format, "html") {
			c.emit(markup.HtmlBlock(text, markup.Attributes{}))
		}
		// Raw content for other formats renders as nothing.
		return
	}

	if language := codeLanguage(class); language != "" || isBlock(node) {
		attrs := nodeAttributes(node)
		attrs.Delete("class")
		c.emit(markup.CodeBlock(language, strings.TrimSuffix(text, "\n"), attrs))
		return
	}

	c.emit(markup.Start(markup.Container{Kind: markup.Other, Tag: "code"}, markup.Attributes{}))
	c.emit(markup.Str(text))
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.Other, Tag: "code"}))
}

func (c *converter) list(node *djot_parser.TreeNode[djot_parser.DjotNode], kind markup.ListKind) {
	if hasTaskItems(node) {
		kind.Type = markup.ListTask
	}
	c.emit(markup.Start(markup.Container{
		Kind:     markup.List,
		ListKind: kind,
		Tight:    isTight(node),
	}, nodeAttributes(node)))
	c.children(node)
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.List, ListKind: kind}))
}

func (c *converter) listItem(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	class := attr(node, "class")
	checked, task := taskState(class)
	if !task {
		c.wrap(node, markup.Container{Kind: markup.ListItem})
		return
	}
	attrs := nodeAttributes(node)
	attrs.Delete("class")
	c.emit(markup.Start(markup.Container{Kind: markup.TaskListItem, Checked: checked}, attrs))
	c.children(node)
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.TaskListItem}))
}

// table synthesizes an explicit head and body: the rows made of header
// cells form the head, everything after forms the body.
func (c *converter) table(node *djot_parser.TreeNode[djot_parser.DjotNode]) {
	c.emit(markup.Start(markup.Container{Kind: markup.Table}, nodeAttributes(node)))

	rows := tableRows(node)
	split := 0
	for split < len(rows) && isHeaderRow(rows[split]) {
		split++
	}

	if split > 0 {
		c.emit(markup.Start(markup.Container{Kind: markup.TableHead}, markup.Attributes{}))
		for _, row := range rows[:split] {
			c.tableRow(row, true)
		}
		c.emit(markup.End(markup.ContainerEnd{Kind: markup.TableHead}))
	}
	if split < len(rows) {
		c.emit(markup.Start(markup.Container{Kind: markup.TableBody}, markup.Attributes{}))
		for _, row := range rows[split:] {
			c.tableRow(row, false)
		}
		c.emit(markup.End(markup.ContainerEnd{Kind: markup.TableBody}))
	}

	c.emit(markup.End(markup.ContainerEnd{Kind: markup.Table}))
}

func (c *converter) tableRow(row *djot_parser.TreeNode[djot_parser.DjotNode], head bool) {
	c.emit(markup.Start(markup.Container{Kind: markup.TableRow}, markup.Attributes{}))
	for i := range row.Children {
		cell := &row.Children[i]
		c.emit(markup.Start(markup.Container{
			Kind:      markup.TableCell,
			Head:      head,
			Alignment: cellAlignment(cell),
		}, markup.Attributes{}))
		c.children(cell)
		c.emit(markup.End(markup.ContainerEnd{Kind: markup.TableCell, Head: head}))
	}
	c.emit(markup.End(markup.ContainerEnd{Kind: markup.TableRow}))
}
