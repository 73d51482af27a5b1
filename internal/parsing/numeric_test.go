package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"plain integer", "42", 42, true},
		{"plain float", "3.14", 3.14, true},
		{"negative", "-7", -7, true},
		{"thousands with decimals", "1,234.5", 1234.5, true},
		{"decimal comma", "12,5", 12.5, true},
		{"percent suffix", "12.5%", 0.125, true},
		{"percent with decimal comma", "12,5%", 0.125, true},
		{"currency with separators", "$1,200.00", 1200, true},
		{"surrounding whitespace", "  99  ", 99, true},
		{"non-breaking space separator", "1 234", 1234, true},
		{"empty cell", "", 0, false},
		{"blank cell", "   ", 0, false},
		{"text cell", "n/a", 0, false},
		{"lone dash", "-", 0, false},
		{"lone percent", "%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNumberOrAndPtr(t *testing.T) {
	assert.Equal(t, 5.0, NumberOr("5", -1))
	assert.Equal(t, -1.0, NumberOr("junk", -1))
	assert.Equal(t, -1.0, NumberOr("", -1))

	require.NotNil(t, NumberPtr("2.5"))
	assert.Equal(t, 2.5, *NumberPtr("2.5"))
	assert.Nil(t, NumberPtr(""))
	assert.Nil(t, NumberPtr("n/a"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "ISO date",
			raw:  "2025-03-05",
			want: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "RFC3339 timestamp",
			raw:  "2025-03-05T10:30:00Z",
			want: time.Date(2025, time.March, 5, 10, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "US slash date",
			raw:  "03/05/2025",
			want: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "long month name",
			raw:  "March 5, 2025",
			want: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "serial day with fraction",
			raw:  "45000.5",
			want: time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "serial day 60 keeps the legacy leap-year shift",
			raw:  "60",
			want: time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "empty cell",
			raw:  "",
			ok:   false,
		},
		{
			name: "free text",
			raw:  "yesterday",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSerialToDate(t *testing.T) {
	// Day 1 of the serial system is 1899-12-31.
	assert.Equal(t, time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), SerialToDate(1))
	// Fractions are time of day at millisecond precision.
	got := SerialToDate(45000.25)
	assert.Equal(t, time.Date(2023, time.March, 15, 6, 0, 0, 0, time.UTC), got)
}
