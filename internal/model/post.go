package model

import "time"

// SortMode selects the ordering of a posts page.
type SortMode string

const (
	SortNew SortMode = "new" // newest first (default)
	SortTop SortMode = "top" // most-voted first
)

// ParseSortMode returns the sort mode for a raw query value, defaulting
// to SortNew for anything unrecognised.
func ParseSortMode(raw string) SortMode {
	if SortMode(raw) == SortTop {
		return SortTop
	}
	return SortNew
}

// VoteCounts holds the per-category running totals for a post.
type VoteCounts struct {
	Trusted    int `json:"trusted"`
	Suspicious int `json:"suspicious"`
	Untrusted  int `json:"untrusted"`
}

// Sum returns the total across all categories.
func (c VoteCounts) Sum() int {
	return c.Trusted + c.Suspicious + c.Untrusted
}

// VoteAggregate is a post's committed vote state. TotalVotes always equals
// Counts.Sum() after any committed mutation.
type VoteAggregate struct {
	PostID     string     `json:"postId"`
	Counts     VoteCounts `json:"counts"`
	TotalVotes int        `json:"totalVotes"`
	LastVoteAt *time.Time `json:"lastVoteAt,omitempty"`
}

// AggregateDelta describes an atomic adjustment to a post's aggregate
// fields. A new vote carries +1 in one category and +1 total; a changed
// vote carries -1/+1 across two categories and 0 total.
type AggregateDelta struct {
	Trusted    int
	Suspicious int
	Untrusted  int
	Total      int
}

// IsZero reports whether the delta changes nothing.
func (d AggregateDelta) IsZero() bool {
	return d.Trusted == 0 && d.Suspicious == 0 && d.Untrusted == 0 && d.Total == 0
}

// Post represents a community-submitted link.
type Post struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	Counts      VoteCounts `json:"counts"`
	TotalVotes  int        `json:"totalVotes"`
	LastVoteAt  *time.Time `json:"lastVoteAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewPost is the payload for creating a post.
type NewPost struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"ownerId"`
}

// PostsPage is one page of posts plus pagination state.
type PostsPage struct {
	Posts      []Post `json:"posts"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Consensus is the derived community classification for a post. It is
// recomputed from the aggregate on demand and never persisted.
type Consensus struct {
	Label      string `json:"label"`
	Percentage int    `json:"percentage"`
}
