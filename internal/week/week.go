// Package week provides the canonical calendar helpers used for
// Monday-aligned reporting weeks and the DD/MM/YYYY display date format.
// All functions are pure; dates are handled as UTC midnights.
package week

import (
	"strings"
	"time"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "2/1/2006"
)

// Date truncates t to midnight UTC, discarding clock time and zone.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Start returns the Monday on or before t. Weeks run Monday–Sunday, so a
// Sunday maps back to the previous Monday. Start is idempotent:
// Start(Start(t)) == Start(t).
func Start(t time.Time) time.Time {
	d := Date(t)
	offset := int(time.Monday - d.Weekday())
	if d.Weekday() == time.Sunday {
		offset = -6
	}
	return d.AddDate(0, 0, offset)
}

// ParseDisplay parses a DD/MM/YYYY date. One- and two-digit day and month
// values are both accepted. Returns false for malformed input and for dates
// that do not exist on the calendar (e.g. 31/02/2024).
func ParseDisplay(s string) (time.Time, bool) {
	t, err := time.Parse(displayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return Date(t), true
}

// FormatDisplay renders t as zero-padded DD/MM/YYYY. The zero time renders
// as the empty string.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// ParseISO parses a YYYY-MM-DD date.
func ParseISO(s string) (time.Time, bool) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return Date(t), true
}

// FormatISO renders t as YYYY-MM-DD. The zero time renders as the empty string.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoLayout)
}
