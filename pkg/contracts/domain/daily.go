package domain

import (
	"time"
)

// DailyMetric is one normalized row of a daily page-metrics sheet. All
// numeric fields except impressions are nil when the source column is
// missing or unparseable.
type DailyMetric struct {
	Date           *time.Time `json:"date"`
	Impressions    float64    `json:"impressions"`
	Clicks         *float64   `json:"clicks"`
	Reactions      *float64   `json:"reactions"`
	Comments       *float64   `json:"comments"`
	Shares         *float64   `json:"shares"`
	VideoViews     *float64   `json:"video_views"`
	EngagementRate *float64   `json:"engagement_rate"`
}
