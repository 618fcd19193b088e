package timefmt

import (
	"strings"
	"time"
)

const (
	shortLayout = "Jan 2"
	longLayout  = "Jan 2, 3:04 PM"
)

// Layouts carrying their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	time.RFC1123Z,
	time.RFC1123,
}

// Wall-clock layouts without an offset, read in the formatter's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
}

// Date-only ISO strings are UTC midnight.
const dateOnlyLayout = "2006-01-02"

// Formatter parses upstream date strings and renders dashboard labels in a
// fixed location.
type Formatter struct {
	loc *time.Location
}

func New(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.Local
	}
	return Formatter{loc: loc}
}

func (f Formatter) Location() *time.Location {
	if f.loc == nil {
		return time.Local
	}
	return f.loc
}

// ToInstant parses raw; ok is false when raw is empty or unparseable.
func (f Formatter) ToInstant(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, f.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToInstantPtr is ToInstant for nullable columns.
func (f Formatter) ToInstantPtr(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	return f.ToInstant(*raw)
}

// UnixMilliOrZero mirrors the "unparseable sorts as epoch" rule used when
// ordering rows by their timestamps.
func (f Formatter) UnixMilliOrZero(raw *string) int64 {
	t, ok := f.ToInstantPtr(raw)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// ShortLabel renders "Jan 2".
func (f Formatter) ShortLabel(t time.Time) string {
	return t.In(f.Location()).Format(shortLayout)
}

// LongLabel renders "Jan 2, 3:04 PM".
func (f Formatter) LongLabel(t time.Time) string {
	return t.In(f.Location()).Format(longLayout)
}

// ShortLabelOr renders raw as a short label, or fallback when it does not parse.
func (f Formatter) ShortLabelOr(raw *string, fallback string) string {
	if t, ok := f.ToInstantPtr(raw); ok {
		return f.ShortLabel(t)
	}
	return fallback
}
