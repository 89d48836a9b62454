package markup

import (
	"fmt"
	"sort"
	"strings"
)

// InternalLinkPrefix marks link destinations that resolve to another entry
// by canonical name, e.g. ~/posts/example#section.
const InternalLinkPrefix = "~/"

// EntryRef is a referenceable entry, keyed by its canonical name. Internal
// link destinations rewrite to the Permalink.
type EntryRef interface {
	CanonicalName() string
	Permalink() string
}

// ExtractTitle pulls the document title out of a materialized event buffer.
// When the buffer opens with a section whose first child is a level-1
// heading, the heading's inner events render to a trimmed HTML string and
// are removed in place, so the main render never sees the title again.
// Otherwise the buffer is untouched and the title is empty.
func ExtractTitle(events *[]Event) (string, error) {
	buf := *events
	if len(buf) < 2 {
		return "", nil
	}
	if buf[0].Kind != EventStart || buf[0].Container.Kind != Section {
		return "", nil
	}
	if buf[1].Kind != EventStart || buf[1].Container.Kind != Heading || buf[1].Container.Level != 1 {
		return "", nil
	}

	src := &sliceStream{events: buf, idx: 2}
	inner, err := Collect(Span(src))
	if err != nil {
		return "", err
	}

	title, _, err := WriteHTML(Events(inner), nil)
	if err != nil {
		return "", err
	}
	title = strings.TrimRight(title, " \t\r\n")

	// src.idx sits one past the heading's end event
	*events = append(buf[:1], buf[src.idx:]...)
	return title, nil
}

// RewriteInternalLinks resolves every link and image destination carrying
// the internal prefix against the canonical-name table, rewriting it to the
// target's permalink plus any fragment. An unknown canonical name is fatal.
// The returned entries are those referenced by links (not images), sorted by
// canonical name and deduplicated.
func RewriteInternalLinks(events []Event, entries map[string]EntryRef) ([]EntryRef, error) {
	var linked []EntryRef

	for i := range events {
		switch {
		case events[i].Kind == EventStart && events[i].Container.Kind == Link:
			entry, dest, err := resolveInternalLink(events[i].Container.Destination, entries)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				events[i].Container.Destination = dest
				linked = append(linked, entry)
			}

		case events[i].Kind == EventImage:
			entry, dest, err := resolveInternalLink(events[i].Destination, entries)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				events[i].Destination = dest
			}
		}
	}

	sort.Slice(linked, func(i, j int) bool {
		return linked[i].CanonicalName() < linked[j].CanonicalName()
	})
	deduped := linked[:0]
	for _, entry := range linked {
		if len(deduped) == 0 || deduped[len(deduped)-1].CanonicalName() != entry.CanonicalName() {
			deduped = append(deduped, entry)
		}
	}
	return deduped, nil
}

// resolveInternalLink maps ~/name#fragment to the entry's permalink plus
// fragment. Destinations without the prefix resolve to a nil entry.
func resolveInternalLink(destination string, entries map[string]EntryRef) (EntryRef, string, error) {
	name, ok := strings.CutPrefix(destination, InternalLinkPrefix)
	if !ok {
		return nil, "", nil
	}

	fragment := ""
	if idx := strings.IndexByte(name, '#'); idx >= 0 {
		name, fragment = name[:idx], name[idx:]
	}

	entry, ok := entries[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownInternalLink, destination)
	}
	return entry, entry.Permalink() + fragment, nil
}
