package domain

// ParseResult aggregates the normalized rows produced from one upload batch.
// A batch always yields a result; files that could not be processed are
// reported in Failures instead of aborting the batch.
type ParseResult struct {
	Posts                 []Post                 `json:"posts"`
	Daily                 []DailyMetric          `json:"daily"`
	FollowersDaily        []FollowersDaily       `json:"followers_daily"`
	FollowersDemographics []FollowersDemographic `json:"followers_demographics"`
	Failures              []FileFailure          `json:"failures,omitempty"`
}

// FileFailure records why one file of a batch was skipped.
type FileFailure struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// IsEmpty reports whether the batch produced no rows at all.
func (r *ParseResult) IsEmpty() bool {
	return len(r.Posts) == 0 && len(r.Daily) == 0 &&
		len(r.FollowersDaily) == 0 && len(r.FollowersDemographics) == 0
}
