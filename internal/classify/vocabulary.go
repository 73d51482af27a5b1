package classify

import (
	"regexp"

	"linkpulse/pkg/contracts/domain"
)

// Vocabulary is the pattern configuration a Classifier scores against. It is
// injected at construction so tests can substitute reduced vocabularies, and
// so no hidden package state affects classification.
type Vocabulary struct {
	// ExplicitTypes maps normalized values of the explicit type column to a
	// category. An exact match here short-circuits all text inference.
	ExplicitTypes map[string]domain.ContentCategory

	// TextFields is the priority order in which a record's text columns are
	// concatenated for scoring.
	TextFields []string

	JobStrong       []*regexp.Regexp
	JobWeak         []*regexp.Regexp
	Funding         []*regexp.Regexp
	FundingCurrency *regexp.Regexp
	Newsletter      []*regexp.Regexp

	// ListLine matches one numbered or bulleted list line with capitalized
	// content, applied per line of the raw text.
	ListLine *regexp.Regexp
}

// DefaultVocabulary returns the production pattern tables. The keyword and
// phrase sets are a versioned contract: changing them changes classification
// of previously uploaded files.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ExplicitTypes: map[string]domain.ContentCategory{
			"video":      domain.CategoryVideo,
			"jobs":       domain.CategoryJobs,
			"job":        domain.CategoryJobs,
			"hiring":     domain.CategoryJobs,
			"funding":    domain.CategoryFunding,
			"investment": domain.CategoryFunding,
			"newsletter": domain.CategoryNewsletter,
			"regular":    domain.CategoryRegular,
		},
		TextFields: []string{"title", "summary", "description", "content", "text", "body", "caption"},
		JobStrong: []*regexp.Regexp{
			regexp.MustCompile(`\bwe'?re hiring\b`),
			regexp.MustCompile(`\bnow hiring\b`),
			regexp.MustCompile(`\bhiring now\b`),
			regexp.MustCompile(`\bhiring alert\b`),
			regexp.MustCompile(`\bhiring for\b`),
			regexp.MustCompile(`\bopen roles?\b`),
			regexp.MustCompile(`\bopen positions?\b`),
			regexp.MustCompile(`\bcareer opportunit(?:y|ies)\b`),
			regexp.MustCompile(`\bjoin our team\b`),
			regexp.MustCompile(`\bapply now\b`),
			regexp.MustCompile(`\baccepting applications\b`),
			regexp.MustCompile(`\brole available\b`),
			regexp.MustCompile(`\bjob openings?\b`),
			regexp.MustCompile(`\broles posted\b`),
		},
		JobWeak: []*regexp.Regexp{
			regexp.MustCompile(`\bhiring\b`),
			regexp.MustCompile(`\bjobs\b`),
			regexp.MustCompile(`\bhiring list\b`),
			regexp.MustCompile(`\bhiring roundup\b`),
		},
		Funding: []*regexp.Regexp{
			regexp.MustCompile(`\bfunding\b`),
			regexp.MustCompile(`\brais(?:e|ed|es)\b`),
			regexp.MustCompile(`\bseries [a-z]\b`),
			regexp.MustCompile(`\bpre-?seed\b`),
			regexp.MustCompile(`\bseed round\b`),
			regexp.MustCompile(`\bventure capital\b`),
			regexp.MustCompile(`\bvc\b`),
			regexp.MustCompile(`\binvestment\b`),
			regexp.MustCompile(`\bround\b`),
			regexp.MustCompile(`\bvaluation\b`),
			regexp.MustCompile(`\bipo\b`),
			regexp.MustCompile(`\bacquisition\b`),
			regexp.MustCompile(`\bmerger\b`),
			regexp.MustCompile(`\bdebt facility\b`),
			regexp.MustCompile(`\blead investor\b`),
			regexp.MustCompile(`\bpending close\b`),
			regexp.MustCompile(`\bstrategic investment\b`),
			regexp.MustCompile(`\bterm sheet\b`),
		},
		FundingCurrency: regexp.MustCompile(`(?:[$€£]|\b(?:usd|us\$|eur|gbp))\s?\d[\d,]*(?:\.\d+)?`),
		Newsletter: []*regexp.Regexp{
			regexp.MustCompile(`\bnew issue is live\b`),
			regexp.MustCompile(`\bnewsletter\b`),
		},
		ListLine: regexp.MustCompile(`^\s*(?:\d{1,3}[.)]|[-*•])\s+[A-Z0-9][^\n]{2,}`),
	}
}

// scorePatterns sums the match counts of every pattern in the family. All
// families are scored by this one function so priority and tie-breaking live
// in data, not control flow.
func scorePatterns(text string, patterns []*regexp.Regexp) int {
	if text == "" {
		return 0
	}
	score := 0
	for _, p := range patterns {
		score += len(p.FindAllStringIndex(text, -1))
	}
	return score
}
