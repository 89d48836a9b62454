package markup

// Notes:
// - goldens assert exact output bytes, including newline placement
// - footnote numbering is first-touch order, so reference order wins over
//   definition order
// - the summary split happens at the first marker paragraph only

import (
	"io"
	"log/slog"
	"testing"
)

func renderHTML(t *testing.T, events []Event) (summary, rest string) {
	t.Helper()
	summary, rest, err := WriteHTML(Events(events), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return summary, rest
}

func paragraph(text string) []Event {
	return []Event{
		Start(Container{Kind: Paragraph}, Attributes{}),
		Str(text),
		End(ContainerEnd{Kind: Paragraph}),
	}
}

// ---------------------------------------------------------------------------
// TestWriteEscaping - Text and Attribute Escaping
// ---------------------------------------------------------------------------

func TestWriteEscaping(t *testing.T) {
	t.Parallel()

	summary, rest := renderHTML(t, paragraph(`<script>&"'`))
	want := "<p>&lt;script&gt;&amp;&quot;&#x27;</p>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
	if rest != "" {
		t.Errorf("expected empty rest, got %q", rest)
	}
}

// ---------------------------------------------------------------------------
// TestWriteHeading - Section Wrapper and Self Link
// ---------------------------------------------------------------------------

func TestWriteHeading(t *testing.T) {
	t.Parallel()

	summary, _ := renderHTML(t, []Event{
		Start(Container{Kind: Section, ID: "my-heading"}, Attributes{}),
		Start(Container{Kind: Heading, Level: 1, ID: "my-heading"}, Attributes{}),
		Str("My heading"),
		End(ContainerEnd{Kind: Heading, Level: 1}),
		End(ContainerEnd{Kind: Section}),
	})
	want := "<section id=\"my-heading\">\n" +
		"<h1><a href=\"#my-heading\">My heading</a></h1>\n" +
		"</section>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

// ---------------------------------------------------------------------------
// TestWriteBlockquote - No Trailing Newline After Close
// ---------------------------------------------------------------------------

func TestWriteBlockquote(t *testing.T) {
	t.Parallel()

	events := paragraph("A paragraph")
	events = append(events, Start(Container{Kind: Blockquote}, Attributes{}))
	events = append(events, paragraph("And a\nblockquote")...)
	events = append(events, End(ContainerEnd{Kind: Blockquote}))

	summary, _ := renderHTML(t, events)
	want := "<p>A paragraph</p>\n" +
		"<blockquote>\n" +
		"<p>And a\nblockquote</p>\n" +
		"</blockquote>"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

// ---------------------------------------------------------------------------
// TestWriteList - Tightness, Numbering and Task Items
// ---------------------------------------------------------------------------

func TestWriteList(t *testing.T) {
	t.Parallel()

	item := func(kind ContainerKind, checked bool, text string) []Event {
		return []Event{
			Start(Container{Kind: kind, Checked: checked}, Attributes{}),
			Start(Container{Kind: Paragraph}, Attributes{}),
			Str(text),
			End(ContainerEnd{Kind: Paragraph}),
			End(ContainerEnd{Kind: kind}),
		}
	}
	list := func(kind ListKind, tight bool, items ...[]Event) []Event {
		events := []Event{Start(Container{Kind: List, ListKind: kind, Tight: tight}, Attributes{})}
		for _, it := range items {
			events = append(events, it...)
		}
		return append(events, End(ContainerEnd{Kind: List, ListKind: kind}))
	}

	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name: "tight unordered",
			events: list(ListKind{Type: ListUnordered}, true,
				item(ListItem, false, "item 1"),
				item(ListItem, false, "item 2"),
			),
			want: "<ul>\n<li>item 1</li>\n<li>item 2</li>\n</ul>\n",
		},
		{
			name: "loose unordered",
			events: list(ListKind{Type: ListUnordered}, false,
				item(ListItem, false, "item 1"),
			),
			want: "<ul>\n<li>\n<p>item 1</p>\n</li>\n</ul>\n",
		},
		{
			name: "ordered with start",
			events: list(ListKind{Type: ListOrdered, Start: 3}, true,
				item(ListItem, false, "item"),
			),
			want: "<ol start=\"3\">\n<li>item</li>\n</ol>\n",
		},
		{
			name: "ordered alpha lower",
			events: list(ListKind{Type: ListOrdered, Numbering: AlphaLower, Start: 1}, true,
				item(ListItem, false, "item"),
			),
			want: "<ol type=\"a\">\n<li>item</li>\n</ol>\n",
		},
		{
			name: "ordered roman upper",
			events: list(ListKind{Type: ListOrdered, Numbering: RomanUpper, Start: 1}, true,
				item(ListItem, false, "item"),
			),
			want: "<ol type=\"I\">\n<li>item</li>\n</ol>\n",
		},
		{
			name: "task list",
			events: list(ListKind{Type: ListTask}, true,
				item(TaskListItem, true, "done"),
				item(TaskListItem, false, "todo"),
			),
			want: "<ul class=\"task-list\">\n" +
				"<li class=\"checked\" data-checked=\"true\">done</li>\n" +
				"<li class=\"unchecked\" data-checked=\"false\">todo</li>\n" +
				"</ul>\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary, _ := renderHTML(t, tt.events)
			if summary != tt.want {
				t.Errorf("expected %q, got %q", tt.want, summary)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteDescriptionList
// ---------------------------------------------------------------------------

func TestWriteDescriptionList(t *testing.T) {
	t.Parallel()

	events := []Event{
		Start(Container{Kind: DescriptionList}, Attributes{}),
		Start(Container{Kind: DescriptionTerm}, Attributes{}),
		Str("Term"),
		End(ContainerEnd{Kind: DescriptionTerm}),
		Start(Container{Kind: DescriptionDetails}, Attributes{}),
	}
	events = append(events, paragraph("Definition")...)
	events = append(events,
		End(ContainerEnd{Kind: DescriptionDetails}),
		End(ContainerEnd{Kind: DescriptionList}),
	)

	summary, _ := renderHTML(t, events)
	want := "<dl>\n<dt>Term</dt>\n<dd>\n<p>Definition</p>\n</dd>\n</dl>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

// ---------------------------------------------------------------------------
// TestWriteTable - Head/Body Split and Cell Alignment
// ---------------------------------------------------------------------------

func TestWriteTable(t *testing.T) {
	t.Parallel()

	cell := func(head bool, align Alignment, text string) []Event {
		return []Event{
			Start(Container{Kind: TableCell, Head: head, Alignment: align}, Attributes{}),
			Str(text),
			End(ContainerEnd{Kind: TableCell, Head: head}),
		}
	}
	events := []Event{
		Start(Container{Kind: Table}, Attributes{}),
		Start(Container{Kind: TableHead}, Attributes{}),
		Start(Container{Kind: TableRow}, Attributes{}),
	}
	events = append(events, cell(true, AlignUnspecified, "head 1")...)
	events = append(events, cell(true, AlignRight, "head 2")...)
	events = append(events,
		End(ContainerEnd{Kind: TableRow}),
		End(ContainerEnd{Kind: TableHead}),
		Start(Container{Kind: TableBody}, Attributes{}),
		Start(Container{Kind: TableRow}, Attributes{}),
	)
	events = append(events, cell(false, AlignUnspecified, "cell 1")...)
	events = append(events, cell(false, AlignRight, "cell 2")...)
	events = append(events,
		End(ContainerEnd{Kind: TableRow}),
		End(ContainerEnd{Kind: TableBody}),
		End(ContainerEnd{Kind: Table}),
	)

	summary, _ := renderHTML(t, events)
	want := "<table>\n" +
		"<thead>\n" +
		"<tr>\n" +
		"<th>head 1</th>\n" +
		"<th style=\"text-align: right;\">head 2</th>\n" +
		"</tr>\n" +
		"</thead>\n" +
		"<tbody>\n" +
		"<tr>\n" +
		"<td>cell 1</td>\n" +
		"<td style=\"text-align: right;\">cell 2</td>\n" +
		"</tr>\n" +
		"</tbody>\n" +
		"</table>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFootnotes - Numbering and Missing Definitions
// ---------------------------------------------------------------------------

func TestWriteFootnoteNumbering(t *testing.T) {
	t.Parallel()

	definition := func(label, text string) []Event {
		events := []Event{Start(Container{Kind: Footnote, Label: label}, Attributes{})}
		events = append(events, paragraph(text)...)
		return append(events, End(ContainerEnd{Kind: Footnote}))
	}

	// References touch a before b, so a gets number 1 even though its
	// definition comes last.
	events := []Event{
		Start(Container{Kind: Paragraph}, Attributes{}),
		Str("text"),
		FootnoteReference("a"),
		FootnoteReference("b"),
		End(ContainerEnd{Kind: Paragraph}),
	}
	events = append(events, definition("b", "note b")...)
	events = append(events, definition("a", "note a")...)

	summary, _ := renderHTML(t, events)
	want := "<p>text" +
		"<sup class=\"footnote-reference\"><a role=\"doc-noteref\" href=\"#fn-1\">1</a>\n</sup>" +
		"<sup class=\"footnote-reference\"><a role=\"doc-noteref\" href=\"#fn-2\">2</a>\n</sup>" +
		"</p>\n" +
		"<hr>\n" +
		"<aside class=\"footnotes\" role=\"doc-endnotes\">\n" +
		"<ol>\n" +
		"<li class=\"footnote-definition\" id=\"fn-1\" role=\"doc-footnote\">\n" +
		"<p>note a</p>\n" +
		"</li>\n" +
		"<li class=\"footnote-definition\" id=\"fn-2\" role=\"doc-footnote\">\n" +
		"<p>note b</p>\n" +
		"</li>\n" +
		"</ol>\n" +
		"</aside>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

func TestWriteFootnoteMissingDefinition(t *testing.T) {
	t.Parallel()

	events := []Event{
		Start(Container{Kind: Paragraph}, Attributes{}),
		FootnoteReference("ghost"),
		End(ContainerEnd{Kind: Paragraph}),
	}

	summary, _ := renderHTML(t, events)
	want := "<p>" +
		"<sup class=\"footnote-reference\"><a role=\"doc-noteref\" href=\"#fn-1\">1</a>\n</sup>" +
		"</p>\n" +
		"<hr>\n" +
		"<aside class=\"footnotes\" role=\"doc-endnotes\">\n" +
		"<ol>\n" +
		"<li class=\"footnote-definition\" id=\"fn-1\" role=\"doc-footnote\"></li>\n" +
		"</ol>\n" +
		"</aside>\n"
	if summary != want {
		t.Errorf("expected %q, got %q", want, summary)
	}
}

// ---------------------------------------------------------------------------
// TestWriteSummarySplit
// ---------------------------------------------------------------------------

func TestWriteSummarySplit(t *testing.T) {
	t.Parallel()

	events := paragraph("one")
	events = append(events, paragraph(SummaryMarker)...)
	events = append(events, paragraph("two")...)
	events = append(events, paragraph(SummaryMarker)...)
	events = append(events, paragraph("three")...)

	summary, rest := renderHTML(t, events)
	if summary != "<p>one</p>\n" {
		t.Errorf("unexpected summary: %q", summary)
	}
	// Only the first marker splits; later markers are dropped from output.
	if rest != "<p>two</p>\n<p>three</p>\n" {
		t.Errorf("unexpected rest: %q", rest)
	}
}

func TestWriteSummarySplitPiecewiseMarker(t *testing.T) {
	t.Parallel()

	// Parsers can hand the marker paragraph over as several adjacent text
	// events; the split must still trigger.
	marker := []Event{
		Start(Container{Kind: Paragraph}, Attributes{}),
		Str("-more"),
		Str("-"),
		End(ContainerEnd{Kind: Paragraph}),
	}
	events := paragraph("intro")
	events = append(events, marker...)
	events = append(events, paragraph("body")...)

	summary, rest := renderHTML(t, events)
	if summary != "<p>intro</p>\n" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if rest != "<p>body</p>\n" {
		t.Errorf("unexpected rest: %q", rest)
	}
}

func TestWriteSummaryNearMissMarker(t *testing.T) {
	t.Parallel()

	// A paragraph that merely starts like the marker renders as text.
	events := []Event{
		Start(Container{Kind: Paragraph}, Attributes{}),
		Str("-more"),
		Str("-ish"),
		End(ContainerEnd{Kind: Paragraph}),
	}

	summary, rest := renderHTML(t, events)
	if summary != "<p>-more-ish</p>\n" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if rest != "" {
		t.Errorf("expected empty rest, got %q", rest)
	}
}

func TestWriteNoMarker(t *testing.T) {
	t.Parallel()

	summary, rest := renderHTML(t, paragraph("only"))
	if summary != "<p>only</p>\n" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if rest != "" {
		t.Errorf("expected empty rest, got %q", rest)
	}
}

// ---------------------------------------------------------------------------
// TestWriteRawHTML - Verbatim vs. Wrapped
// ---------------------------------------------------------------------------

func TestWriteRawHTML(t *testing.T) {
	t.Parallel()

	var attrs Attributes
	attrs.Set("class", "note")

	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "block verbatim",
			events: []Event{HtmlBlock("<video controls></video>", Attributes{})},
			want:   "<video controls></video>",
		},
		{
			name:   "block with attributes wrapped",
			events: []Event{HtmlBlock("<video controls></video>", attrs)},
			want:   "<div class=\"note\"><video controls></video></div>\n",
		},
		{
			name: "inline verbatim",
			events: []Event{
				Start(Container{Kind: Paragraph}, Attributes{}),
				HtmlInline("<br />", Attributes{}),
				End(ContainerEnd{Kind: Paragraph}),
			},
			want: "<p><br /></p>\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary, _ := renderHTML(t, tt.events)
			if summary != tt.want {
				t.Errorf("expected %q, got %q", tt.want, summary)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteLeafFallbacks - Renditions Without Rewrite Passes
// ---------------------------------------------------------------------------

func TestWriteLeafFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "image",
			events: []Event{Image("pic.png", "alt text", Attributes{})},
			want:   "<img src=\"pic.png\" alt=\"alt text\">",
		},
		{
			name:   "code block",
			events: []Event{CodeBlock("rust", "fn main() {}", Attributes{})},
			want:   "<pre>\n<code>\nfn main() {}\n</code>\n</pre>",
		},
		{
			name:   "math",
			events: []Event{Math(MathInline, "x < y", Attributes{})},
			want:   "<span class=\"math\">x &lt; y</span>",
		},
		{
			name:   "thematic break",
			events: []Event{TagWithAttribute("hr", Attributes{})},
			want:   "<hr>",
		},
		{
			name: "link",
			events: []Event{
				Start(Container{Kind: Paragraph}, Attributes{}),
				Start(Container{Kind: Link, Destination: "https://example.com/"}, Attributes{}),
				Str("text"),
				End(ContainerEnd{Kind: Link}),
				End(ContainerEnd{Kind: Paragraph}),
			},
			want: "<p><a href=\"https://example.com/\">text</a></p>\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary, _ := renderHTML(t, tt.events)
			if summary != tt.want {
				t.Errorf("expected %q, got %q", tt.want, summary)
			}
		})
	}
}
