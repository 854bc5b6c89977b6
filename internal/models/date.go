// ABOUTME: Calendar date helpers shared by dated entities.
// ABOUTME: Dates are stored as ISO YYYY-MM-DD strings.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339 input and returns the normalized calendar date.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(DateLayout), nil
	}
	return "", fmt.Errorf("invalid date: %q", s)
}

// FormatDate renders t as a calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateAfter reports whether calendar date a is strictly after b. Both must be normalized.
func DateAfter(a, b string) bool {
	return a > b
}
