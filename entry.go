package sprokkel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EntriesDirName is the directory entries are discovered under, one group
// directory deep.
const EntriesDirName = "entries"

// DiscoverEntries walks <sitePath>/entries one level deep: every directory
// there is a group, and every .dj/.md file (or directory with an index
// file) inside a group is an entry. The result is sorted per group, dated
// entries newest first, undated ones after them by slug.
func DiscoverEntries(sitePath string) ([]*Entry, error) {
	root := filepath.Join(sitePath, EntriesDirName)
	groups, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoEntriesDir, root)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var entries []*Entry
	seen := map[string]bool{}
	for _, group := range groups {
		if !group.IsDir() {
			continue
		}
		groupDir := filepath.Join(root, group.Name())
		items, err := os.ReadDir(groupDir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", groupDir, err)
		}
		for _, item := range items {
			entry, err := discoverEntry(groupDir, group.Name(), item)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				continue
			}
			if seen[entry.CanonicalName()] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.CanonicalName())
			}
			seen[entry.CanonicalName()] = true
			entries = append(entries, entry)
		}
	}

	sortEntries(entries)
	return entries, nil
}

// discoverEntry interprets one item of a group directory. Items that are
// neither entry files nor entry directories resolve to nil.
func discoverEntry(groupDir, group string, item os.DirEntry) (*Entry, error) {
	if item.IsDir() {
		return discoverDirEntry(groupDir, group, item.Name())
	}

	format, ok := entryFormat(item.Name())
	if !ok {
		return nil, nil
	}
	entry, err := entryFromStem(group, strings.TrimSuffix(item.Name(), filepath.Ext(item.Name())))
	if err != nil {
		return nil, err
	}
	entry.Format = format
	entry.SourcePath = filepath.Join(groupDir, item.Name())
	return entry, nil
}

// discoverDirEntry resolves a directory-shaped entry: the directory name
// carries the date and slug, and an index.dj or index.md inside is the
// document. The directory itself holds the entry's images.
func discoverDirEntry(groupDir, group, name string) (*Entry, error) {
	dir := filepath.Join(groupDir, name)
	for _, index := range []string{"index.dj", "index.md"} {
		path := filepath.Join(dir, index)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		entry, err := entryFromStem(group, name)
		if err != nil {
			return nil, err
		}
		entry.Format, _ = entryFormat(index)
		entry.SourcePath = path
		entry.AssetsDir = dir
		return entry, nil
	}
	return nil, nil
}

// entryFromStem parses the date prefix and slug out of a file or directory
// stem. The prefix ends at the first underscore; a stem without one is an
// undated entry.
func entryFromStem(group, stem string) (*Entry, error) {
	datePart, slug, found := strings.Cut(stem, "_")
	if !found {
		return &Entry{Group: group, Slug: stem}, nil
	}
	date, err := parseEntryTime(datePart)
	if err != nil {
		// No parseable date prefix; the whole stem is the slug.
		return &Entry{Group: group, Slug: stem}, nil
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: empty slug in %q", ErrBadEntryDate, stem)
	}
	return &Entry{Group: group, Slug: slug, Dated: true, Date: date}, nil
}

func entryFormat(name string) (Format, bool) {
	switch filepath.Ext(name) {
	case ".dj":
		return FormatDjot, true
	case ".md":
		return FormatCommonMark, true
	}
	return 0, false
}

// sortEntries orders entries for stable builds and listings: by group,
// dated before undated, newest first, then by slug.
func sortEntries(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Dated != b.Dated {
			return a.Dated
		}
		if a.Dated && !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		return a.Slug < b.Slug
	})
}
