package importer

// normalize.go coerces raw string fields into typed values. The rules are
// strict on purpose: ambiguous input is rejected, never guessed, so that a
// preview shows the user exactly what a commit would do.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts tried in order; first success wins. Purely numeric strings
// that fit neither layout are rejected rather than reinterpreted.
var dateLayouts = []string{
	"02/01/2006", // DD/MM/YYYY
	"2006-01-02", // ISO
}

// clockLayout is the only accepted time-of-day format.
const clockLayout = "15:04"

// ParseDate parses a date in DD/MM/YYYY or YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseClock parses a time of day in HH:MM format.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", s)
	}
	return t, nil
}

// ParseDecimal parses a quantity, duration, or money amount. Both comma and
// dot are accepted as decimal separator; when both appear the comma is
// treated as a thousands separator. Currency symbols are stripped.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"$", "€", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized number %q", s)
	}
	return v, nil
}

// field returns the cleaned value of a column, empty when absent.
func (r RawRecord) field(name string) string {
	return strings.TrimSpace(r.Fields[name])
}
