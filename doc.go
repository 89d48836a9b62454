// Package sprokkel builds static sites from Djot and CommonMark entries.
//
// # Site Layout
//
// A site is a directory holding:
//
//	sprokkel.toml     site configuration (base URLs, link style)
//	entries/          one subdirectory per entry group
//	templates/        html/template files; names starting with _ are
//	                  entry templates, the rest render as standalone pages
//	assets/           copied into the output verbatim (optional)
//	cat/              per-directory file concatenation bundles (optional)
//
// An entry is a .dj or .md file, or a directory with an index.dj/index.md
// plus its images. File names carry an optional date prefix:
//
//	entries/posts/2024-04-26_example.dj
//	entries/posts/2024-04-26T123456_example/index.dj
//
// # Building
//
//	b := &sprokkel.Builder{SitePath: "./", Develop: false}
//	if err := b.Build(); err != nil {
//	    log.Fatal(err)
//	}
//
// Build discovers the entries, parses front matter, renders every document
// through the markup engine (internal/markup) with syntax highlighting,
// MathML and responsive image variants, resolves ~/group/slug internal
// links, renders templates and stages the finished site under ./out.
//
// Entries link to each other with internal destinations:
//
//	See [an earlier post](~/posts/example#section).
//
// Each rendered entry knows which entries link to it, so templates can show
// back-references.
package sprokkel
