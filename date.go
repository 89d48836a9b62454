package sprokkel

import (
	"fmt"
	"time"
)

// EntryTime is an entry's publication moment, taken from the file name's
// date prefix. HasClock distinguishes day-only dates from ones carrying a
// clock time.
type EntryTime struct {
	time.Time
	HasClock bool
}

const (
	entryDateLayout     = "2006-01-02"
	entryDateTimeLayout = "2006-01-02T150405"
)

// parseEntryTime reads an entry date prefix: either 2006-01-02 or
// 2006-01-02T150405 (lowercase t accepted).
func parseEntryTime(s string) (EntryTime, error) {
	switch len(s) {
	case len(entryDateLayout):
		t, err := time.Parse(entryDateLayout, s)
		if err != nil {
			return EntryTime{}, fmt.Errorf("%w: %q", ErrBadEntryDate, s)
		}
		return EntryTime{Time: t}, nil

	case len(entryDateTimeLayout):
		if s[10] != 'T' && s[10] != 't' {
			return EntryTime{}, fmt.Errorf("%w: %q", ErrBadEntryDate, s)
		}
		t, err := time.Parse(entryDateTimeLayout, s[:10]+"T"+s[11:])
		if err != nil {
			return EntryTime{}, fmt.Errorf("%w: %q", ErrBadEntryDate, s)
		}
		return EntryTime{Time: t, HasClock: true}, nil
	}
	return EntryTime{}, fmt.Errorf("%w: %q", ErrBadEntryDate, s)
}
