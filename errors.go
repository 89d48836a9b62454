package sprokkel

import "errors"

// Sentinel errors for site building.
var (
	ErrNoEntriesDir    = errors.New("entries directory not found")
	ErrBadEntryDate    = errors.New("invalid entry date")
	ErrFrontMatter     = errors.New("invalid front matter")
	ErrConfig          = errors.New("invalid site configuration")
	ErrDuplicateEntry  = errors.New("duplicate canonical entry name")
	ErrUnknownTemplate = errors.New("no template for entry")
)
