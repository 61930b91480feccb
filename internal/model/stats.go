package model

// Stats is the API response for global statistics.
type Stats struct {
	TotalPosts      int            `json:"totalPosts"`
	TotalVotes      int            `json:"totalVotes"`
	TotalComments   int            `json:"totalComments"`
	TotalUsers      int            `json:"totalUsers"`
	VotesByCategory map[string]int `json:"votesByCategory"`
}

// CacheInfo is the diagnostic snapshot of the engine's cache and
// deduplicator state. No correctness dependency.
type CacheInfo struct {
	PostEntries  int `json:"postEntries"`
	StatsEntries int `json:"statsEntries"`
	Capacity     int `json:"capacity"`
	InFlightKeys int `json:"inFlightKeys"`
}
