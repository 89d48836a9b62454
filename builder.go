package sprokkel

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tomcur/sprokkel/internal/highlight"
	"github.com/tomcur/sprokkel/internal/images"
	"github.com/tomcur/sprokkel/internal/markup"
	"github.com/tomcur/sprokkel/internal/markup/commonmark"
	"github.com/tomcur/sprokkel/internal/markup/djot"
	"github.com/tomcur/sprokkel/internal/mathml"
	"github.com/tomcur/sprokkel/internal/out"
	"github.com/tomcur/sprokkel/internal/render"
)

// Well-known directories inside a site.
const (
	TemplatesDirName = "templates"
	AssetsDirName    = "assets"
	CatDirName       = "cat"
	OutDirName       = "out"
)

// stagedFile is generated output held in memory until the output directory
// exists.
type stagedFile struct {
	rel  string
	data []byte
}

// Builder turns a site directory into a rendered site under its out
// directory. A Builder is reusable; watch mode calls Build after every
// change.
type Builder struct {
	SitePath string
	// Develop selects the develop base URL and keeps unreleased entries in
	// the build.
	Develop bool
	Logger  *slog.Logger
}

// Build runs one full site build from scratch.
func (b *Builder) Build() error {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := LoadConfig(filepath.Join(b.SitePath, ConfigFileName))
	if err != nil {
		return err
	}
	ctx := NewCtx(cfg, b.Develop)

	templates, err := render.Load(filepath.Join(b.SitePath, TemplatesDirName))
	if err != nil {
		return err
	}

	entries, err := DiscoverEntries(b.SitePath)
	if err != nil {
		return err
	}

	if err := forEachEntry(entries, func(e *Entry) error {
		return loadEntry(e, logger)
	}); err != nil {
		return err
	}
	if !b.Develop {
		entries = releasedOnly(entries)
	}
	for _, e := range entries {
		e.permalink = ctx.AbsoluteURL(e.OutPath())
	}

	if err := rewriteLinks(entries); err != nil {
		return err
	}

	if err := forEachEntry(entries, func(e *Entry) error {
		return prepareImages(e, logger)
	}); err != nil {
		return err
	}

	highlighter := highlight.New(highlight.DefaultStyle)
	if err := forEachEntry(entries, func(e *Entry) error {
		renderer := markup.Renderer{
			Highlighter: highlighter,
			Math:        mathml.Renderer{},
			Images:      e.images,
			Logger:      logger.With("entry", e.CanonicalName()),
		}
		summary, rest, err := renderer.Render(e.events)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", e.CanonicalName(), err)
		}
		e.Summary, e.Rest = template.HTML(summary), template.HTML(rest)
		e.events = nil
		return nil
	}); err != nil {
		return err
	}

	return b.stage(ctx, templates, entries)
}

// loadEntry reads an entry's source, splits off front matter, parses the
// document and settles the title. Front matter titles win over a leading
// level-1 heading; the slug is the fallback.
func loadEntry(e *Entry, logger *slog.Logger) error {
	raw, err := os.ReadFile(e.SourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.SourcePath, err)
	}
	fm, body, err := parseFrontMatter(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", e.SourcePath, err)
	}
	e.FrontMatter = fm

	switch e.Format {
	case FormatDjot:
		e.events = djot.Parse(body, logger.With("entry", e.CanonicalName()))
	case FormatCommonMark:
		e.events = commonmark.Parse(body)
	}

	title, err := markup.ExtractTitle(&e.events)
	if err != nil {
		return fmt.Errorf("extracting title of %s: %w", e.SourcePath, err)
	}
	switch {
	case fm.Title != "":
		e.Title = fm.Title
	case title != "":
		e.Title = title
	default:
		e.Title = e.Slug
	}
	return nil
}

func releasedOnly(entries []*Entry) []*Entry {
	released := entries[:0]
	for _, e := range entries {
		if e.FrontMatter.Released {
			released = append(released, e)
		}
	}
	return released
}

// rewriteLinks resolves internal link destinations against the canonical
// name table and records back-references on the targets.
func rewriteLinks(entries []*Entry) error {
	table := make(map[string]markup.EntryRef, len(entries))
	byName := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		table[e.CanonicalName()] = e
		byName[e.CanonicalName()] = e
	}

	for _, e := range entries {
		linked, err := markup.RewriteInternalLinks(e.events, table)
		if err != nil {
			return fmt.Errorf("resolving links of %s: %w", e.CanonicalName(), err)
		}
		for _, ref := range linked {
			target := byName[ref.CanonicalName()]
			target.LinkedBy = append(target.LinkedBy, e)
		}
	}

	for _, e := range entries {
		sort.Slice(e.LinkedBy, func(i, j int) bool {
			return e.LinkedBy[i].CanonicalName() < e.LinkedBy[j].CanonicalName()
		})
	}
	return nil
}

// rasterExts are the formats internal/images can decode and downscale.
var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// prepareImages builds the entry's image variant table and stages the
// downscaled renditions in memory. Files that fail to decode keep a table
// entry without a width, so the document still gets a plain img tag.
func prepareImages(e *Entry, logger *slog.Logger) error {
	if e.AssetsDir == "" {
		return nil
	}
	items, err := os.ReadDir(e.AssetsDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.AssetsDir, err)
	}

	e.images = make(map[string]markup.ImageVariants)
	outDir := e.OutAssetsDir()
	for _, item := range items {
		name := item.Name()
		if item.IsDir() || filepath.Join(e.AssetsDir, name) == e.SourcePath {
			continue
		}
		variants := markup.ImageVariants{Original: path.Join(outDir, name)}

		if rasterExts[strings.ToLower(path.Ext(name))] {
			data, err := os.ReadFile(filepath.Join(e.AssetsDir, name))
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			img, err := images.Process(name, data)
			if err != nil {
				logger.Warn("could not process image", "entry", e.CanonicalName(), "image", name, "error", err)
			} else {
				variants.OriginalWidth = img.Width
				for _, v := range img.Variants {
					rel := path.Join(outDir, v.Name)
					switch v.Width {
					case 1536:
						variants.Width1536 = rel
					case 768:
						variants.Width768 = rel
					}
					e.variants = append(e.variants, stagedFile{rel: rel, data: v.Data})
				}
			}
		}
		e.images[name] = variants
	}
	return nil
}

// stage writes the finished site: entry pages, entry assets, standalone
// pages, the shared asset tree and the concatenation bundles.
func (b *Builder) stage(ctx *Ctx, templates *render.Templates, entries []*Entry) error {
	dir, err := out.Recreate(filepath.Join(b.SitePath, OutDirName))
	if err != nil {
		return err
	}
	grouped := groupEntries(entries)

	for _, e := range entries {
		var buf bytes.Buffer
		data := entryData{Site: ctx, Entry: e, Entries: grouped}
		if err := templates.Render(&buf, templates.EntryTemplate(e.Group), data); err != nil {
			return fmt.Errorf("entry %s: %w", e.CanonicalName(), err)
		}
		if err := dir.WriteFile(e.OutPath(), buf.Bytes()); err != nil {
			return err
		}
		if err := stageEntryAssets(dir, e); err != nil {
			return err
		}
	}

	for _, name := range templates.Pages() {
		var buf bytes.Buffer
		if err := templates.Render(&buf, name, pageData{Site: ctx, Entries: grouped}); err != nil {
			return fmt.Errorf("page %s: %w", name, err)
		}
		if err := dir.WriteFile(name, buf.Bytes()); err != nil {
			return err
		}
	}

	if err := dir.CopyDir(".", filepath.Join(b.SitePath, AssetsDirName)); err != nil {
		return err
	}
	return stageCatBundles(dir, filepath.Join(b.SitePath, CatDirName))
}

// stageEntryAssets copies the entry's source-side files into its output
// assets directory and writes the staged image variants next to them.
func stageEntryAssets(dir *out.Dir, e *Entry) error {
	if e.AssetsDir != "" {
		items, err := os.ReadDir(e.AssetsDir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.AssetsDir, err)
		}
		for _, item := range items {
			name := item.Name()
			src := filepath.Join(e.AssetsDir, name)
			if item.IsDir() || src == e.SourcePath {
				continue
			}
			if err := dir.CopyFile(path.Join(e.OutAssetsDir(), name), src); err != nil {
				return err
			}
		}
	}
	for _, staged := range e.variants {
		if err := dir.WriteFile(staged.rel, staged.data); err != nil {
			return err
		}
	}
	return nil
}

// stageCatBundles concatenates every directory under the site's cat
// directory into one output file of the same name. cat/style.css/ holding
// a.css and b.css becomes out/style.css.
func stageCatBundles(dir *out.Dir, catPath string) error {
	items, err := os.ReadDir(catPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", catPath, err)
	}
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		if err := dir.CatDir(item.Name(), filepath.Join(catPath, item.Name())); err != nil {
			return err
		}
	}
	return nil
}

// entryData is the dot value entry templates execute with.
type entryData struct {
	Site    *Ctx
	Entry   *Entry
	Entries map[string][]*Entry
}

// pageData is the dot value standalone page templates execute with.
type pageData struct {
	Site    *Ctx
	Entries map[string][]*Entry
}

// groupEntries indexes entries by group, keeping the discovery order:
// dated entries newest first, then undated by slug.
func groupEntries(entries []*Entry) map[string][]*Entry {
	grouped := make(map[string][]*Entry)
	for _, e := range entries {
		grouped[e.Group] = append(grouped[e.Group], e)
	}
	return grouped
}
