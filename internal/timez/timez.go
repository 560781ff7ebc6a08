// Package timez converts instants across the API boundary. Everything at
// rest is UTC; input and output use the zone declared by the target user.
package timez

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Layouts used on the wire.
const (
	Short   = "2006-01-02 15:04"
	Long    = "2006-01-02 15:04:05"
	DateFmt = "2006-01-02"
)

// DefaultZone is used when a user declares no zone.
const DefaultZone = "UTC"

// LoadZone resolves an IANA zone name. An empty name means UTC.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}
	return loc, nil
}

// MustZone is LoadZone falling back to UTC; stored zones were validated on write.
func MustZone(name string) *time.Location {
	loc, err := LoadZone(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseShort parses "YYYY-MM-DD HH:MM" as wall time in loc and returns UTC.
func ParseShort(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Short, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD HH:MM")
	}
	return t.UTC(), nil
}

// ParseDate parses "YYYY-MM-DD" as local midnight in loc and returns UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFmt, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD")
	}
	return t.UTC(), nil
}

// ParseShortOrDate accepts either the short instant form or a bare date.
func ParseShortOrDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := ParseShort(s, loc); err == nil {
		return t, nil
	}
	if t, err := ParseDate(s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD HH:MM or YYYY-MM-DD")
}

// FormatShort renders t in loc as "YYYY-MM-DD HH:MM".
func FormatShort(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Short)
}

// FormatLong renders t in loc as "YYYY-MM-DD HH:MM:SS".
func FormatLong(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Long)
}

// FromUnix restores a stored instant.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// NextDay returns the midnight following the local day of t in loc.
func NextDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc).UTC()
}
