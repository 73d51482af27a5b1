package domain

import (
	"time"
)

// Dataset identifies one saved upload batch. The dataset store assigns the
// ID and stamps CreatedAt at save time.
type Dataset struct {
	ID        string        `json:"id" validate:"required,uuid"`
	Name      string        `json:"name" validate:"required"`
	CreatedAt time.Time     `json:"created_at"`
	Counts    DatasetCounts `json:"counts"`
}

// DatasetCounts summarizes how many rows of each collection a dataset holds.
type DatasetCounts struct {
	Posts                 int `json:"posts"`
	Daily                 int `json:"daily"`
	FollowersDaily        int `json:"followers_daily"`
	FollowersDemographics int `json:"followers_demographics"`
	Snapshots             int `json:"snapshots"`
}

// PostSnapshot is a point-in-time observation of a post's metrics, derived
// from a Post at save time and keyed by (ActivityID, DatasetID, ObservedAt).
type PostSnapshot struct {
	ActivityID     string    `json:"activity_id"`
	DatasetID      string    `json:"dataset_id"`
	ObservedAt     time.Time `json:"observed_at"`
	Impressions    float64   `json:"impressions"`
	Likes          float64   `json:"likes"`
	Comments       float64   `json:"comments"`
	Reposts        float64   `json:"reposts"`
	EngagementRate *float64  `json:"engagement_rate"`
}
