// Package classify assigns posts to a small content taxonomy (Video, Jobs,
// Funding, Newsletter, Regular) by scoring free text against pattern
// families. Explicit type metadata from the source export always wins over
// text inference.
package classify

import (
	"sort"
	"strings"

	"linkpulse/pkg/contracts/domain"
)

// Classifier scores post text against an injected vocabulary. A single
// instance is safe for concurrent use; the vocabulary is never mutated.
type Classifier struct {
	vocab Vocabulary
}

// NewClassifier creates a classifier over the given vocabulary. A zero
// vocabulary is replaced with the default one.
func NewClassifier(vocab Vocabulary) *Classifier {
	if len(vocab.TextFields) == 0 {
		vocab = DefaultVocabulary()
	}
	return &Classifier{vocab: vocab}
}

// Derive returns the content category for a post record. fields carries the
// post's text columns plus the explicit type column under "contentTypeColumn"
// (or "contentType"). A nil map is Uncategorized.
func (c *Classifier) Derive(fields map[string]string) domain.ContentCategory {
	if fields == nil {
		return domain.CategoryUncategorized
	}

	column := strings.ToLower(strings.TrimSpace(firstOf(fields, "contentTypeColumn", "contentType")))
	if cat, ok := c.vocab.ExplicitTypes[column]; ok {
		return cat
	}
	if column != "" && strings.Contains(column, "video") {
		return domain.CategoryVideo
	}

	raw := c.collectText(fields)
	if raw == "" {
		return domain.CategoryRegular
	}
	text := strings.ToLower(raw)

	scored := []struct {
		category domain.ContentCategory
		score    int
	}{
		{domain.CategoryFunding, c.scoreFunding(text)},
		{domain.CategoryJobs, c.scoreJobs(text, raw)},
		{domain.CategoryNewsletter, scorePatterns(text, c.vocab.Newsletter)},
	}
	// Stable sort keeps the declared Funding > Jobs > Newsletter order on
	// exact ties.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if scored[0].score > 0 {
		return scored[0].category
	}
	return domain.CategoryRegular
}

// Bucketize maps a fine-grained category onto the coarse reporting bucket.
// Anything outside the four named buckets, including Uncategorized, reports
// as Regular.
func Bucketize(category domain.ContentCategory) domain.ContentCategory {
	switch category {
	case domain.CategoryVideo, domain.CategoryJobs, domain.CategoryFunding, domain.CategoryNewsletter:
		return category
	}
	return domain.CategoryRegular
}

// collectText joins all present text fields, in field priority order, into
// one string for scoring.
func (c *Classifier) collectText(fields map[string]string) string {
	var parts []string
	for _, field := range c.vocab.TextFields {
		if v := strings.TrimSpace(fields[field]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func (c *Classifier) scoreFunding(text string) int {
	score := scorePatterns(text, c.vocab.Funding)
	if c.vocab.FundingCurrency.MatchString(text) {
		score++
	}
	return score
}

// scoreJobs gates the jobs category behind strong hiring intent. A single
// incidental "hiring" mention in analytical commentary must not classify as
// a hiring announcement, so the category only qualifies on a strong phrase,
// two weak mentions, or a weak mention combined with a list of companies.
func (c *Classifier) scoreJobs(text, raw string) int {
	strong := scorePatterns(text, c.vocab.JobStrong)
	weak := scorePatterns(text, c.vocab.JobWeak)
	listSignal := c.listSignal(raw)

	qualified := strong > 0 || weak >= 2 || (weak >= 1 && listSignal >= 1)
	if !qualified {
		return 0
	}
	return strong*3 + weak + listSignal*2
}

// listSignal detects numbered or bulleted company lists in the raw
// (case-preserved) text. Three matching lines are the minimum; every further
// three lines add one to the signal.
func (c *Classifier) listSignal(raw string) int {
	matches := 0
	for _, line := range strings.Split(raw, "\n") {
		if c.vocab.ListLine.MatchString(strings.TrimSuffix(line, "\r")) {
			matches++
		}
	}
	if matches >= 3 {
		return 1 + (matches-3)/3
	}
	return 0
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}
