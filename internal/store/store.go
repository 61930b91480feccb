// Package store abstracts the backing document store. The engine depends on
// this contract only; the Postgres implementation lives alongside it.
package store

import (
	"context"

	"github.com/linkwise/linkwise/internal/model"
)

// Store is the read/write surface the engine consumes.
type Store interface {
	// FetchPostsPage returns one page of posts ordered by sort. An empty
	// cursor means the first page.
	FetchPostsPage(ctx context.Context, sort model.SortMode, size int, cursor string) (model.PostsPage, error)

	// FetchStats returns global aggregate statistics.
	FetchStats(ctx context.Context) (model.Stats, error)

	// CreatePost persists a newly submitted link and returns it.
	CreatePost(ctx context.Context, np model.NewPost) (model.Post, error)

	// WithTx runs fn inside a single transaction. Vote writes and aggregate
	// updates issued through the Tx commit or roll back as one unit.
	WithTx(ctx context.Context, fn func(Tx) error) error
}

// Tx is the transactional surface used by the vote ledger.
type Tx interface {
	// GetPost loads a post's current state. Returns ErrNotFound if absent.
	GetPost(ctx context.Context, postID string) (model.Post, error)

	// GetVote returns the voter's existing vote on the post, or nil.
	GetVote(ctx context.Context, postID, voterID string) (*model.Vote, error)

	// WriteVote inserts the vote, or updates the category of an existing
	// vote for the same (post, voter) pair.
	WriteVote(ctx context.Context, v *model.Vote) error

	// UpdatePostAggregate applies an atomic counter delta and returns the
	// updated aggregate.
	UpdatePostAggregate(ctx context.Context, postID string, delta model.AggregateDelta) (model.VoteAggregate, error)
}
