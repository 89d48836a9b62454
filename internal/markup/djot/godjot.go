package djot

// godjot-facing helpers. Everything that touches the godjot node and
// attribute representation lives here, so the adapter walk reads in terms
// of the event vocabulary only.

import (
	"strconv"
	"strings"

	"github.com/sivukhin/godjot/djot_parser"

	"github.com/tomcur/sprokkel/internal/markup"
)

type node = djot_parser.TreeNode[djot_parser.DjotNode]

// attr returns a single attribute value, empty when absent.
func attr(n *node, key string) string {
	return n.Attributes.Get(key)
}

// nodeAttributes converts a node's user-written attributes. Positional
// attributes the adapter consumes itself (href, src, alt) are kept here and
// deleted by the caller where they would double-render.
func nodeAttributes(n *node) markup.Attributes {
	var attrs markup.Attributes
	for key, value := range n.Attributes.GoMap() {
		if strings.HasPrefix(key, "$") {
			// godjot-internal bookkeeping keys
			continue
		}
		attrs.Set(key, value)
	}
	return attrs
}

// nodeText flattens a node to its raw text.
func nodeText(n *node) string {
	if len(n.Children) == 0 {
		return string(n.FullText())
	}
	var b strings.Builder
	for i := range n.Children {
		b.WriteString(nodeText(&n.Children[i]))
	}
	return b.String()
}

// imageAlt flattens image children to alt text, falling back to the alt
// attribute.
func imageAlt(n *node) string {
	if text := nodeText(n); text != "" {
		return text
	}
	return attr(n, "alt")
}

// rawFormat returns the raw passthrough format of a verbatim node, e.g.
// "html" for `{=html}` blocks, or empty. The format survives parsing
// either as a literal `=html`-style attribute key or under a format key.
func rawFormat(n *node) string {
	for key := range n.Attributes.GoMap() {
		if format, ok := strings.CutPrefix(key, "="); ok {
			return format
		}
	}
	return attr(n, "format")
}

// codeLanguage extracts the fence language from a class list.
func codeLanguage(class string) string {
	for _, part := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(part, "language-"); ok {
			return lang
		}
	}
	return ""
}

// isBlock reports whether a verbatim node is a code block rather than an
// inline code span. Block verbatims keep their trailing newline.
func isBlock(n *node) bool {
	return strings.HasSuffix(string(n.FullText()), "\n")
}

// taskState decodes the checked/unchecked class Djot task items carry.
func taskState(class string) (checked, task bool) {
	for _, part := range strings.Fields(class) {
		switch part {
		case "checked":
			return true, true
		case "unchecked":
			return false, true
		}
	}
	return false, false
}

func hasTaskItems(list *node) bool {
	for i := range list.Children {
		item := &list.Children[i]
		if item.Type != djot_parser.ListItemNode {
			continue
		}
		if _, task := taskState(attr(item, "class")); task {
			return true
		}
	}
	return false
}

// isTight reports list tightness. godjot marks tight lists with a tight
// attribute; without it the list renders loose.
func isTight(list *node) bool {
	return attr(list, "tight") == "true"
}

// orderedListKind decodes the start and numbering style of an ordered list.
func orderedListKind(list *node) markup.ListKind {
	kind := markup.ListKind{Type: markup.ListOrdered, Start: 1}
	if start, err := strconv.ParseUint(attr(list, "start"), 10, 64); err == nil {
		kind.Start = start
	}
	switch attr(list, "type") {
	case "a":
		kind.Numbering = markup.AlphaLower
	case "A":
		kind.Numbering = markup.AlphaUpper
	case "i":
		kind.Numbering = markup.RomanLower
	case "I":
		kind.Numbering = markup.RomanUpper
	}
	return kind
}

func tableRows(table *node) []*node {
	var rows []*node
	for i := range table.Children {
		if table.Children[i].Type == djot_parser.TableRowNode {
			rows = append(rows, &table.Children[i])
		}
	}
	return rows
}

// isHeaderRow reports whether every cell in the row is a header cell.
func isHeaderRow(row *node) bool {
	if len(row.Children) == 0 {
		return false
	}
	for i := range row.Children {
		if row.Children[i].Type != djot_parser.TableHeaderNode {
			return false
		}
	}
	return true
}

// cellAlignment decodes a cell's column alignment from the style godjot
// records on it.
func cellAlignment(cell *node) markup.Alignment {
	style := attr(cell, "style")
	switch {
	case strings.Contains(style, "text-align: left"):
		return markup.AlignLeft
	case strings.Contains(style, "text-align: center"):
		return markup.AlignCenter
	case strings.Contains(style, "text-align: right"):
		return markup.AlignRight
	}
	return markup.AlignUnspecified
}
