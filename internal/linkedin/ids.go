// Package linkedin decodes platform-assigned activity identifiers.
//
// An activity id is a 64-bit integer whose high bits carry the post's
// creation time in Unix milliseconds and whose low 22 bits hold a
// worker/sequence discriminator. Shifting the id right by 22 recovers the
// timestamp; the shift amount is a fixed contract of the id scheme.
package linkedin

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// shiftWorkerAndSequence is the number of low bits reserved for
// intra-millisecond sequencing.
const shiftWorkerAndSequence = 22

var (
	activityPattern = regexp.MustCompile(`(?i)activity(?::|%3A)(\d+)`)
	bareDigits      = regexp.MustCompile(`^\d+$`)
)

// ExtractActivityID pulls the numeric activity id out of a post URL or URN.
// A value that is already a bare number is returned unchanged. Returns ""
// when no id is present.
func ExtractActivityID(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if m := activityPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if bareDigits.MatchString(s) {
		return s
	}
	return ""
}

// ActivityTimestamp decodes the millisecond creation time embedded in an
// activity id. ok is false for unparseable or zero ids. The id never fits in
// a float64 mantissa, so it is parsed as a uint64 and shifted as an integer.
func ActivityTimestamp(activityID string) (time.Time, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(activityID), 10, 64)
	if err != nil || id == 0 {
		return time.Time{}, false
	}
	ms := id >> shiftWorkerAndSequence
	return time.UnixMilli(int64(ms)).UTC(), true
}

// DeriveActivityTimestamp extracts an activity id from value and decodes the
// embedded timestamp. ok is false when value carries no decodable id.
func DeriveActivityTimestamp(value string) (time.Time, bool) {
	id := ExtractActivityID(value)
	if id == "" {
		return time.Time{}, false
	}
	return ActivityTimestamp(id)
}
