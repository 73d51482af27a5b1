package domain

import (
	"time"
)

// ContentCategory is the fine-grained classification assigned to a post by
// the content classifier.
type ContentCategory string

const (
	CategoryVideo         ContentCategory = "Video"
	CategoryJobs          ContentCategory = "Jobs"
	CategoryFunding       ContentCategory = "Funding"
	CategoryNewsletter    ContentCategory = "Newsletter"
	CategoryRegular       ContentCategory = "Regular"
	CategoryUncategorized ContentCategory = "Uncategorized"
)

// TextStats holds the structural and lexical features derived from a post's
// canonical text.
type TextStats struct {
	WordCount     int  `json:"word_count"`
	CharCount     int  `json:"char_count"`
	SentenceCount int  `json:"sentence_count"`
	EmojiCount    int  `json:"emoji_count"`
	HashtagCount  int  `json:"hashtag_count"`
	MentionCount  int  `json:"mention_count"`
	LinkCount     int  `json:"link_count"`
	CTACount      int  `json:"cta_count"`
	HasMedia      bool `json:"has_media"`
}

// Post is one normalized content record. It is created once per source row
// during ingestion and never mutated afterwards; the dataset store associates
// it with a dataset and persists it.
type Post struct {
	Title          string          `json:"title"`
	Link           string          `json:"link"`
	Type           string          `json:"type"`
	CreatedAt      *time.Time      `json:"created_at"`
	ActivityID     string          `json:"activity_id,omitempty"`
	FullText       string          `json:"full_text"`
	Impressions    float64         `json:"impressions"`
	Likes          float64         `json:"likes"`
	Comments       float64         `json:"comments"`
	Reposts        float64         `json:"reposts"`
	EngagementRate *float64        `json:"engagement_rate"`
	ContentType    ContentCategory `json:"content_type"`
	TextStats
}
