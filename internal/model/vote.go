package model

import "time"

// Vote is an individual vote record. At most one exists per (post, voter)
// pair; resubmission updates the category in place.
type Vote struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	VoterID   string    `json:"voterId"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VoteRequest is the API request body for submitting a vote.
type VoteRequest struct {
	PostID   string `json:"postId"`
	VoterID  string `json:"voterId"`
	Category string `json:"category"`
}

// VoteResponse is the API response after a vote is committed. Category is
// the canonical category that was recorded, after alias translation.
type VoteResponse struct {
	Success   bool          `json:"success"`
	Category  Category      `json:"category"`
	Aggregate VoteAggregate `json:"aggregate"`
	Consensus Consensus     `json:"consensus"`
}
