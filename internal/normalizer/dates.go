package normalizer

import (
	"strings"
	"time"
)

const gdeltSeenDateLayout = "20060102T150405Z"

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date in any supported layout and returns it in UTC.
// Unparseable or empty input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// ParseGDELTSeenDate parses a GDELT seendate such as 20251230T070000Z,
// falling back to ParseDate for other shapes
func ParseGDELTSeenDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(gdeltSeenDateLayout, s); err == nil {
		utc := t.UTC()
		return &utc
	}
	return ParseDate(s)
}

// firstNonEmpty returns the first value that is not blank
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
