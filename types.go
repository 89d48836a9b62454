package sprokkel

import (
	"fmt"
	"html/template"

	"github.com/tomcur/sprokkel/internal/markup"
)

// Format identifies an entry's markup grammar, derived from its file
// extension.
type Format uint8

// Entry formats.
const (
	FormatDjot Format = iota
	FormatCommonMark
)

// FrontMatter holds an entry's leading metadata block. Keys the builder
// does not interpret stay available to templates through Extra.
type FrontMatter struct {
	Title    string
	Released bool
	Extra    map[string]any
}

// Entry is one source document of the site with everything templates need
// to render it.
type Entry struct {
	Group string
	Slug  string

	// Dated is set when the file name carries a date prefix.
	Dated bool
	Date  EntryTime

	Format     Format
	SourcePath string
	// AssetsDir is the source directory holding the entry's images, empty
	// for single-file entries.
	AssetsDir string

	FrontMatter FrontMatter
	Title       string

	// Rendered document fragments, filled during the build.
	Summary template.HTML
	Rest    template.HTML

	// LinkedBy lists the entries whose documents link here, sorted by
	// canonical name.
	LinkedBy []*Entry

	permalink string

	// Intermediate build state, filled and consumed by Builder.Build.
	events   []markup.Event
	images   map[string]markup.ImageVariants
	variants []stagedFile
}

// CanonicalName is the name internal links address the entry by,
// e.g. posts/example.
func (e *Entry) CanonicalName() string {
	return e.Group + "/" + e.Slug
}

// OutPath is the site-relative path of the rendered page.
func (e *Entry) OutPath() string {
	if e.Dated {
		return fmt.Sprintf("%04d/%s/index.html", e.Date.Year(), e.Slug)
	}
	if e.Slug == "index" {
		return "index.html"
	}
	return e.Slug + "/index.html"
}

// OutAssetsDir is the site-relative directory the entry's images stage to.
func (e *Entry) OutAssetsDir() string {
	if e.Dated {
		return fmt.Sprintf("%04d/%s", e.Date.Year(), e.Slug)
	}
	if e.Slug == "index" {
		return ""
	}
	return e.Slug
}

// Permalink is the entry's absolute URL, bound by the build once the site
// context is known.
func (e *Entry) Permalink() string {
	return e.permalink
}
