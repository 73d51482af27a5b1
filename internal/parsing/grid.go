package parsing

import (
	"regexp"
	"strings"
)

// SheetKind identifies the semantic shape of one sheet of an export
// workbook, derived from its header row.
type SheetKind string

const (
	KindPosts                 SheetKind = "posts"
	KindDaily                 SheetKind = "daily"
	KindFollowersDaily        SheetKind = "followers_daily"
	KindFollowersDemographics SheetKind = "followers_demographics"
	KindUnknown               SheetKind = "unknown"
)

// headerScanRows bounds how many leading rows are examined when locating the
// header row.
const headerScanRows = 10

// HeaderVocabulary holds the known header keywords per sheet kind. The sets
// are a versioned contract: removing or renaming a keyword changes how real
// uploaded files classify and is a breaking change. Adding a sheet kind
// means adding a keyword set and a priority slot in ClassifySheet.
type HeaderVocabulary struct {
	Posts                 []string
	Daily                 []string
	FollowersDaily        []string
	FollowersDemographics []string
}

// DefaultHeaderVocabulary returns the header keyword sets observed in real
// analytics exports.
func DefaultHeaderVocabulary() HeaderVocabulary {
	return HeaderVocabulary{
		Posts: []string{
			"post title", "post link", "post type", "posted by", "created date",
			"impressions", "likes", "comments", "reposts", "engagement rate", "content type",
		},
		Daily: []string{
			"date", "impressions", "clicks", "reactions", "comments", "shares",
			"video views", "engagement rate",
		},
		FollowersDaily: []string{
			"date", "sponsored followers", "organic followers",
			"auto-invited followers", "total followers",
		},
		FollowersDemographics: []string{
			"location", "job function", "seniority", "industry", "company size",
			"total followers", "percentage",
		},
	}
}

var headerWhitespace = regexp.MustCompile(`\s+`)

// NormalizeHeader lowercases a header cell, folds newlines into spaces and
// collapses runs of whitespace. Normalized headers are the fixed key space
// for all data rows of a sheet.
func NormalizeHeader(h string) string {
	s := strings.ReplaceAll(h, "\n", " ")
	s = headerWhitespace.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreHeaders counts how many known keywords appear verbatim among the
// normalized candidate headers. Order does not matter.
func ScoreHeaders(headers []string, known []string) int {
	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[NormalizeHeader(h)] = struct{}{}
	}
	score := 0
	for _, k := range known {
		if _, ok := set[k]; ok {
			score++
		}
	}
	return score
}

// Record is one data row keyed by its sheet's normalized headers. Headers
// preserves column order so prefix lookups stay deterministic.
type Record struct {
	Headers []string
	Values  map[string]string
}

// get returns the first non-blank value among exact header candidates.
func (r Record) get(candidates ...string) string {
	for _, c := range candidates {
		if v, ok := r.Values[c]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// getPrefix returns the first non-blank value whose header starts with one
// of the bases, scanning bases in priority order and headers in column
// order. This tolerates variants like "impressions (organic)" against a
// base of "impressions".
func (r Record) getPrefix(bases ...string) string {
	for _, b := range bases {
		for _, h := range r.Headers {
			if strings.HasPrefix(h, b) {
				if v := r.Values[h]; strings.TrimSpace(v) != "" {
					return v
				}
			}
		}
	}
	return ""
}

// Detector locates header rows and classifies sheet kinds against an
// injected header vocabulary.
type Detector struct {
	vocab HeaderVocabulary
}

// NewDetector creates a detector over the given vocabulary. A zero
// vocabulary is replaced with the default one.
func NewDetector(vocab HeaderVocabulary) *Detector {
	if len(vocab.Posts) == 0 {
		vocab = DefaultHeaderVocabulary()
	}
	return &Detector{vocab: vocab}
}

// SheetToRows locates the most likely header row within the first ten rows
// of a grid and zips every following row against it. Extra cells beyond the
// header length are dropped; short rows pad with empty cells.
//
// Header localization scores only the posts and daily keyword sets. Follower
// sheets keep their headers in row zero in practice, so the narrower scan
// has not needed widening.
func (d *Detector) SheetToRows(grid [][]string) ([]string, []Record) {
	if len(grid) == 0 {
		return nil, nil
	}

	bestIdx, bestScore := 0, -1
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		score := ScoreHeaders(grid[i], d.vocab.Posts)
		if s := ScoreHeaders(grid[i], d.vocab.Daily); s > score {
			score = s
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	headers := make([]string, len(grid[bestIdx]))
	for i, h := range grid[bestIdx] {
		headers[i] = NormalizeHeader(h)
	}

	var data []Record
	for _, row := range grid[bestIdx+1:] {
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				values[h] = row[i]
			} else {
				values[h] = ""
			}
		}
		data = append(data, Record{Headers: headers, Values: values})
	}
	return headers, data
}

// ClassifySheet returns the sheet kind whose keyword overlap with the
// header row is highest, or KindUnknown when nothing matches. Exact ties
// resolve toward the earlier-declared kind: posts sheets are the most
// information-dense and share the most incidental vocabulary with daily
// sheets, so they take priority.
func (d *Detector) ClassifySheet(headers []string) SheetKind {
	scores := []struct {
		kind  SheetKind
		score int
	}{
		{KindPosts, ScoreHeaders(headers, d.vocab.Posts)},
		{KindDaily, ScoreHeaders(headers, d.vocab.Daily)},
		{KindFollowersDaily, ScoreHeaders(headers, d.vocab.FollowersDaily)},
		{KindFollowersDemographics, ScoreHeaders(headers, d.vocab.FollowersDemographics)},
	}

	max := 0
	for _, s := range scores {
		if s.score > max {
			max = s.score
		}
	}
	if max == 0 {
		return KindUnknown
	}
	for _, s := range scores {
		if s.score == max {
			return s.kind
		}
	}
	return KindUnknown
}
