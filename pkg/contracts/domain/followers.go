package domain

import (
	"time"
)

// FollowersDaily is one normalized row of a daily follower-gain sheet.
// Counts default to zero when the source column is missing.
type FollowersDaily struct {
	Date                 *time.Time `json:"date"`
	OrganicFollowers     float64    `json:"organic_followers"`
	SponsoredFollowers   float64    `json:"sponsored_followers"`
	AutoInvitedFollowers float64    `json:"auto_invited_followers"`
	TotalFollowers       float64    `json:"total_followers"`
}

// DemographicCategory identifies which follower breakdown a demographics row
// belongs to. The category is inferred from the sheet name.
type DemographicCategory string

const (
	DemographicLocation    DemographicCategory = "location"
	DemographicJobFunction DemographicCategory = "job_function"
	DemographicSeniority   DemographicCategory = "seniority"
	DemographicIndustry    DemographicCategory = "industry"
	DemographicCompanySize DemographicCategory = "company_size"
	DemographicUnknown     DemographicCategory = "unknown"
)

// FollowersDemographic is one normalized row of a follower demographics
// sheet. Rows whose category type could not be inferred are dropped before
// aggregation.
type FollowersDemographic struct {
	CategoryType DemographicCategory `json:"category_type"`
	Category     string              `json:"category"`
	Count        float64             `json:"count"`
}
