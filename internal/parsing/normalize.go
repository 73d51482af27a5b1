package parsing

import (
	"strings"
	"time"

	"linkpulse/internal/classify"
	"linkpulse/internal/fingerprint"
	"linkpulse/internal/linkedin"
	"linkpulse/pkg/contracts/domain"
)

// Normalizer maps detected sheet rows onto the canonical record shapes,
// invoking the numeric/date parsers, the identifier decoder, the text
// fingerprinter and the content classifier.
type Normalizer struct {
	classifier *classify.Classifier
}

// NewNormalizer creates a normalizer. A nil classifier gets the default
// vocabulary.
func NewNormalizer(classifier *classify.Classifier) *Normalizer {
	if classifier == nil {
		classifier = classify.NewClassifier(classify.DefaultVocabulary())
	}
	return &Normalizer{classifier: classifier}
}

// Post normalizes one row of a posts sheet. The creation timestamp decoded
// from the activity id takes precedence over any explicit created-date
// column; the column is only a fallback when no id timestamp is decodable.
func (n *Normalizer) Post(rec Record) domain.Post {
	title := strings.TrimSpace(rec.get("post title", "title"))
	link := strings.TrimSpace(rec.get("post link", "link"))
	typeHint := strings.TrimSpace(rec.get("post type", "type", "content type"))

	idSource := link
	if idSource == "" {
		idSource = rec.get("activity id", "post id", "id", "urn")
	}
	activityID := linkedin.ExtractActivityID(idSource)

	var createdAt *time.Time
	if ts, ok := linkedin.ActivityTimestamp(activityID); ok {
		createdAt = &ts
	} else if t, ok := ParseDate(rec.get("created date", "date")); ok {
		createdAt = &t
	}

	fullText := fingerprint.ComposePostText(rec.Values)
	if strings.TrimSpace(fullText) == "" {
		fullText = title
	}
	stats := fingerprint.Compute(fullText, typeHint)

	impressions := NumberOr(rec.get("impressions"), 0)
	likes := NumberOr(rec.get("likes"), 0)
	comments := NumberOr(rec.get("comments"), 0)
	reposts, ok := ParseNumber(rec.get("reposts"))
	if !ok {
		reposts = NumberOr(rec.get("shares"), 0)
	}

	var engagementRate *float64
	if er, ok := ParseNumber(rec.get("engagement rate")); ok {
		engagementRate = &er
	} else if impressions > 0 {
		er := (likes + comments + reposts) / impressions
		engagementRate = &er
	}

	classifyFields := map[string]string{"title": title}
	if fullText != "" && fullText != title {
		classifyFields["body"] = fullText
	}
	if ct := rec.get("content type"); ct != "" {
		classifyFields["contentTypeColumn"] = ct
	} else if typeHint != "" {
		classifyFields["contentType"] = typeHint
	}

	return domain.Post{
		Title:          title,
		Link:           link,
		Type:           typeHint,
		CreatedAt:      createdAt,
		ActivityID:     activityID,
		FullText:       fullText,
		Impressions:    impressions,
		Likes:          likes,
		Comments:       comments,
		Reposts:        reposts,
		EngagementRate: engagementRate,
		ContentType:    n.classifier.Derive(classifyFields),
		TextStats:      stats,
	}
}

// Daily normalizes one row of a daily metrics sheet. Columns resolve by
// exact name first, then by prefix, so header variants like
// "Impressions (total)" still map.
func (n *Normalizer) Daily(rec Record) domain.DailyMetric {
	num := func(exact []string, prefixes []string) *float64 {
		raw := rec.get(exact...)
		if raw == "" {
			raw = rec.getPrefix(prefixes...)
		}
		return NumberPtr(raw)
	}

	m := domain.DailyMetric{
		Date:           DatePtr(rec.get("date")),
		Clicks:         num([]string{"clicks (total)", "clicks"}, []string{"clicks (total", "clicks"}),
		Reactions:      num([]string{"reactions (total)", "reactions"}, []string{"reactions (total", "reactions"}),
		Comments:       num([]string{"comments (total)", "comments"}, []string{"comments (total", "comments"}),
		Shares:         num([]string{"reposts (total)", "reposts", "shares (total)", "shares"}, []string{"reposts (total", "reposts", "shares (total", "shares"}),
		VideoViews:     num([]string{"video views"}, []string{"video views"}),
		EngagementRate: num([]string{"engagement rate (total)", "engagement rate"}, []string{"engagement rate (total", "engagement rate"}),
	}
	if v := num([]string{"impressions (total)", "impressions"}, []string{"impressions (total", "impressions"}); v != nil {
		m.Impressions = *v
	}
	return m
}

// FollowersDaily normalizes one row of a daily follower-gain sheet. All
// counts default to zero.
func (n *Normalizer) FollowersDaily(rec Record) domain.FollowersDaily {
	return domain.FollowersDaily{
		Date:                 DatePtr(rec.get("date")),
		OrganicFollowers:     NumberOr(rec.get("organic followers"), 0),
		SponsoredFollowers:   NumberOr(rec.get("sponsored followers"), 0),
		AutoInvitedFollowers: NumberOr(rec.get("auto-invited followers", "auto invited followers"), 0),
		TotalFollowers:       NumberOr(rec.get("total followers"), 0),
	}
}

// demographicSheets maps sheet-name fragments to the demographic category
// and its label columns.
var demographicSheets = []struct {
	match   string
	kind    domain.DemographicCategory
	columns []string
}{
	{"location", domain.DemographicLocation, []string{"location"}},
	{"job function", domain.DemographicJobFunction, []string{"job function", "function"}},
	{"seniority", domain.DemographicSeniority, []string{"seniority"}},
	{"industry", domain.DemographicIndustry, []string{"industry"}},
	{"company size", domain.DemographicCompanySize, []string{"company size"}},
}

// FollowersDemographic normalizes one row of a demographics sheet. The
// category type comes from the sheet name, not the row; rows tagged unknown
// must be filtered out by the caller.
func (n *Normalizer) FollowersDemographic(sheetName string, rec Record) domain.FollowersDemographic {
	name := strings.ToLower(sheetName)

	out := domain.FollowersDemographic{CategoryType: domain.DemographicUnknown}
	for _, s := range demographicSheets {
		if strings.Contains(name, s.match) {
			out.CategoryType = s.kind
			out.Category = strings.TrimSpace(rec.get(append(s.columns, "category")...))
			break
		}
	}
	if out.Category == "" {
		out.Category = strings.TrimSpace(rec.get("category"))
	}
	out.Count = NumberOr(rec.get("total followers", "count", "followers"), 0)
	return out
}
