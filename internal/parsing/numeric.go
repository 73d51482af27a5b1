package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	nonNumericChars = regexp.MustCompile(`[^0-9+\-.]`)
	serialString    = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// serialEpoch is day zero of the spreadsheet serial date system. The
// 1899-12-30 epoch carries the Feb 29 1900 leap-year bug of the original
// format; uploaded files encode dates against it, so it stays as is.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for free-text date cells.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

// ParseNumber parses a spreadsheet cell as a float, tolerating percent
// suffixes, thousands separators, decimal commas and stray currency symbols.
// Percent detection runs before separator inference so "12,5%" parses as
// 0.125. ok is false when the cell holds no parseable number.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	isPercent := strings.HasSuffix(s, "%")
	s = strings.ReplaceAll(s, "%", "")

	// Strip all whitespace including NBSP and thin-space variants.
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	// A comma without a dot is a decimal separator; otherwise commas are
	// thousands separators.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	s = nonNumericChars.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	if isPercent {
		n /= 100
	}
	return n, true
}

// NumberOr parses raw as a number, falling back to def for empty or
// malformed cells.
func NumberOr(raw string, def float64) float64 {
	if n, ok := ParseNumber(raw); ok {
		return n
	}
	return def
}

// NumberPtr parses raw as a number, returning nil for empty or malformed
// cells.
func NumberPtr(raw string) *float64 {
	if n, ok := ParseNumber(raw); ok {
		return &n
	}
	return nil
}

// ParseDate parses a spreadsheet cell as a date. Pure-numeric cells are
// interpreted as spreadsheet serial dates; everything else runs through the
// known layouts. ok is false when no interpretation succeeds.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if serialString.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return SerialToDate(serial), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DatePtr parses raw as a date, returning nil when unparseable.
func DatePtr(raw string) *time.Time {
	if t, ok := ParseDate(raw); ok {
		return &t
	}
	return nil
}

// SerialToDate converts a spreadsheet serial day count to a UTC time. The
// fractional part is time of day; rounding happens at millisecond precision
// to match how the files were generated.
func SerialToDate(serial float64) time.Time {
	ms := math.Round(serial * 24 * 60 * 60 * 1000)
	return serialEpoch.Add(time.Duration(ms) * time.Millisecond)
}
