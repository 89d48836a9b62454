// Package render owns the html/template set a site builds its pages with.
//
// Template files whose name starts with an underscore are entry templates:
// _entry.html renders entries by default, and _<group>.html overrides it
// for one group. Every other template file renders once as a standalone
// page at its own name.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoEntryTemplate indicates a site without an _entry.html fallback.
var ErrNoEntryTemplate = errors.New("missing _entry.html template")

const entryTemplate = "_entry.html"

// Templates is a loaded template set. Load a fresh set per build; watch
// mode reloads by loading again.
type Templates struct {
	set *template.Template
}

// Load parses every .html file in dir into one template set. A site needs
// at least the _entry.html template.
func Load(dir string) (*Templates, error) {
	set, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	if set.Lookup(entryTemplate) == nil {
		return nil, fmt.Errorf("%w in %s", ErrNoEntryTemplate, dir)
	}
	return &Templates{set: set}, nil
}

// EntryTemplate returns the template name rendering entries of a group:
// the group's own _<group>.html when defined, _entry.html otherwise.
func (t *Templates) EntryTemplate(group string) string {
	if name := "_" + group + ".html"; t.set.Lookup(name) != nil {
		return name
	}
	return entryTemplate
}

// Pages lists the standalone page templates, sorted by name.
func (t *Templates) Pages() []string {
	var pages []string
	for _, tmpl := range t.set.Templates() {
		name := tmpl.Name()
		if strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".html") {
			continue
		}
		pages = append(pages, name)
	}
	sort.Strings(pages)
	return pages
}

// Render executes the named template.
func (t *Templates) Render(w io.Writer, name string, data any) error {
	if err := t.set.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}
