package commonmark

// Notes:
// - goldens run source through Parse and the plain HTML writer, without
//   rewrite passes, so they pin the adapter's event vocabulary
// - headings must open nested sections with the auto-generated ids
// - footnote labels are reference-order indices

import (
	"io"
	"log/slog"
	"testing"

	"github.com/tomcur/sprokkel/internal/markup"
)

func render(t *testing.T, source string) string {
	t.Helper()
	events := Parse([]byte(source))
	summary, rest, err := markup.WriteHTML(markup.Events(events), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	return summary + rest
}

// ---------------------------------------------------------------------------
// TestParseBlocks
// ---------------------------------------------------------------------------

func TestParseBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "paragraph",
			source: "Some text.\n",
			want:   "<p>Some text.</p>\n",
		},
		{
			name:   "heading opens a section",
			source: "# My heading\n\nText.\n",
			want: "<section id=\"my-heading\">\n" +
				"<h1><a href=\"#my-heading\">My heading</a></h1>\n" +
				"<p>Text.</p>\n" +
				"</section>\n",
		},
		{
			name:   "sections nest by level",
			source: "# A\n\n## B\n\n# C\n",
			want: "<section id=\"a\">\n" +
				"<h1><a href=\"#a\">A</a></h1>\n" +
				"<section id=\"b\">\n" +
				"<h2><a href=\"#b\">B</a></h2>\n" +
				"</section>\n" +
				"</section>\n" +
				"<section id=\"c\">\n" +
				"<h1><a href=\"#c\">C</a></h1>\n" +
				"</section>\n",
		},
		{
			name:   "blockquote",
			source: "A paragraph\n\n> And a\n> blockquote\n",
			want: "<p>A paragraph</p>\n" +
				"<blockquote>\n" +
				"<p>And a\nblockquote</p>\n" +
				"</blockquote>",
		},
		{
			name:   "code fence",
			source: "```rust\nfn main() {}\n```\n",
			want:   "<pre>\n<code>\nfn main() {}\n</code>\n</pre>",
		},
		{
			name:   "thematic break",
			source: "a\n\n---\n\nb\n",
			want:   "<p>a</p>\n<hr>\n<p>b</p>\n",
		},
		{
			name:   "raw html block",
			source: "<div>\nraw\n</div>\n",
			want:   "<div>\nraw\n</div>\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := render(t, tt.source); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseLists
// ---------------------------------------------------------------------------

func TestParseLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "tight unordered",
			source: "- item 1\n- item 2\n",
			want:   "<ul>\n<li>item 1</li>\n<li>item 2</li>\n</ul>\n",
		},
		{
			name:   "loose unordered",
			source: "- item 1\n\n- item 2\n",
			want:   "<ul>\n<li>\n<p>item 1</p>\n</li>\n<li>\n<p>item 2</p>\n</li>\n</ul>\n",
		},
		{
			name:   "ordered with start",
			source: "3. a\n4. b\n",
			want:   "<ol start=\"3\">\n<li>a</li>\n<li>b</li>\n</ol>\n",
		},
		{
			name:   "task list",
			source: "- [x] done\n- [ ] todo\n",
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
			if got := render(t, tt.source); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseInlines
// ---------------------------------------------------------------------------

func TestParseInlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "emphasis",
			source: "some *em* and **strong** text\n",
			want:   "<p>some <em>em</em> and <strong>strong</strong> text</p>\n",
		},
		{
			name:   "strikethrough",
			source: "~~gone~~\n",
			want:   "<p><del>gone</del></p>\n",
		},
		{
			name:   "code span",
			source: "run `make`\n",
			want:   "<p>run <code>make</code></p>\n",
		},
		{
			name:   "link",
			source: "[text](https://example.com/)\n",
			want:   "<p><a href=\"https://example.com/\">text</a></p>\n",
		},
		{
			name:   "image",
			source: "![alt text](pic.png)\n",
			want:   "<p>\n<img src=\"pic.png\" alt=\"alt text\"></p>\n",
		},
		{
			name:   "hard break",
			source: "a\\\nb\n",
			want:   "<p>a<br />\nb</p>\n",
		},
		{
			name:   "smart punctuation",
			source: "It's -- a \"test\"...\n",
			want:   "<p>It’s – a “test”…</p>\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := render(t, tt.source); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseTable
// ---------------------------------------------------------------------------

func TestParseTable(t *testing.T) {
	t.Parallel()

	source := "| head 1 | head 2 |\n" +
		"| ------ | -----: |\n" +
		"| cell 1 | cell 2 |\n"
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
	if got := render(t, source); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// ---------------------------------------------------------------------------
// TestParseFootnotes
// ---------------------------------------------------------------------------

func TestParseFootnotes(t *testing.T) {
	t.Parallel()

	source := "text[^a][^b]\n\n[^a]: note a\n[^b]: note b\n"
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
	if got := render(t, source); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// ---------------------------------------------------------------------------
// TestParseSummaryMarker
// ---------------------------------------------------------------------------

func TestParseSummaryMarker(t *testing.T) {
	t.Parallel()

	events := Parse([]byte("intro\n\n-more-\n\nbody\n"))
	summary, rest, err := markup.WriteHTML(markup.Events(events), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if summary != "<p>intro</p>\n" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if rest != "<p>body</p>\n" {
		t.Errorf("unexpected rest: %q", rest)
	}
}
