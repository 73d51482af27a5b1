package linkedin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractActivityID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "share URL",
			input: "https://www.linkedin.com/feed/update/urn:li:activity:7387527938654691329/",
			want:  "7387527938654691329",
		},
		{
			name:  "URL-encoded URN",
			input: "https://www.linkedin.com/feed/update/urn%3Ali%3Aactivity%3A7387527938654691329",
			want:  "7387527938654691329",
		},
		{
			name:  "uppercase marker",
			input: "urn:li:ACTIVITY:123456",
			want:  "123456",
		},
		{
			name:  "bare numeric id passes through",
			input: "7387527938654691329",
			want:  "7387527938654691329",
		},
		{
			name:  "bare id with surrounding whitespace",
			input: "  7387527938654691329  ",
			want:  "7387527938654691329",
		},
		{
			name:  "no activity marker",
			input: "https://www.linkedin.com/company/example/",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "non-numeric text",
			input: "not an id",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractActivityID(tt.input))
		})
	}
}

func TestActivityTimestamp(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want time.Time
		ok   bool
	}{
		{
			name: "known id decodes to UTC millisecond timestamp",
			id:   "7387527938654691329",
			want: time.Date(2025, time.October, 24, 16, 38, 34, 207_000_000, time.UTC),
			ok:   true,
		},
		{
			name: "zero id rejected",
			id:   "0",
			ok:   false,
		},
		{
			name: "empty id rejected",
			id:   "",
			ok:   false,
		},
		{
			name: "non-numeric id rejected",
			id:   "urn:li:activity:abc",
			ok:   false,
		},
		{
			name: "negative id rejected",
			id:   "-12345",
			ok:   false,
		},
		{
			name: "overflowing id rejected",
			id:   "99999999999999999999999999",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ActivityTimestamp(tt.id)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestDeriveActivityTimestamp(t *testing.T) {
	got, ok := DeriveActivityTimestamp("https://www.linkedin.com/feed/update/urn:li:activity:7387527938654691329/")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 24, 16, 38, 34, 207_000_000, time.UTC), got)

	_, ok = DeriveActivityTimestamp("https://www.linkedin.com/company/example/")
	assert.False(t, ok)
}
