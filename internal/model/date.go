package model

import (
	"fmt"
	"time"
)

// DateLayout is the normalized form every date field carries. Lexicographic
// comparison of two strings in this layout matches chronological order, which
// the query engine depends on.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a normalized date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrValidation)
	}
	return t, nil
}

// FormatDate renders t in the normalized layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
