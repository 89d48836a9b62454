package markup

import "strings"

// htmlEscaper escapes text for HTML body and attribute positions. The stdlib
// html.EscapeString emits &#34;/&#39;; output here is pinned to &quot;/&#x27;
// so rendered documents stay byte-stable.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// escapeHTML escapes s for use as HTML body text or as an attribute value.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// writeEscaped appends the escaped form of s to b.
func writeEscaped(b *strings.Builder, s string) {
	htmlEscaper.WriteString(b, s)
}

// writeTag appends an opening tag to b. Attributes render in their sorted
// order; extras follow them verbatim in the given order.
func writeTag(b *strings.Builder, tag string, attrs Attributes, extras ...Attr) {
	b.WriteByte('<')
	b.WriteString(tag)
	for _, attr := range attrs.All() {
		writeTagAttr(b, attr)
	}
	for _, attr := range extras {
		writeTagAttr(b, attr)
	}
	b.WriteByte('>')
}

func writeTagAttr(b *strings.Builder, attr Attr) {
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	b.WriteString(`="`)
	writeEscaped(b, attr.Value)
	b.WriteByte('"')
}
