// Package ledger enforces one vote per voter per post and translates vote
// submissions into atomic counter deltas against the post aggregate.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/store"
)

type Ledger struct {
	store store.Store
}

func New(st store.Store) *Ledger {
	return &Ledger{store: st}
}

// Submit records a voter's category for a post and returns the updated
// aggregate. A first vote increments the category and total counters; a
// changed vote moves one count between categories with the total unchanged;
// resubmitting the same category is a no-op that still returns the current
// aggregate. Vote write and aggregate update commit as one unit.
//
// Returns model.ErrInvalidCategory before any store call for categories
// outside the closed set, store.ErrNotFound when the post does not exist,
// and store.ErrConflict when a concurrent writer won the race (the whole
// call is safe to retry).
func (l *Ledger) Submit(ctx context.Context, postID, voterID string, category model.Category) (model.VoteAggregate, error) {
	if !category.Valid() {
		return model.VoteAggregate{}, model.ErrInvalidCategory
	}

	var agg model.VoteAggregate
	err := l.store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.GetPost(ctx, postID)
		if err != nil {
			return err
		}

		existing, err := tx.GetVote(ctx, postID, voterID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		switch {
		case existing == nil:
			v := &model.Vote{
				ID:        uuid.NewString(),
				PostID:    postID,
				VoterID:   voterID,
				Category:  category,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.WriteVote(ctx, v); err != nil {
				return err
			}
			delta := categoryDelta(category, 1)
			delta.Total = 1
			agg, err = tx.UpdatePostAggregate(ctx, postID, delta)
			return err

		case existing.Category == category:
			// Idempotent resubmission: no mutation.
			agg = model.VoteAggregate{
				PostID:     post.ID,
				Counts:     post.Counts,
				TotalVotes: post.TotalVotes,
				LastVoteAt: post.LastVoteAt,
			}
			return nil

		default:
			old := existing.Category
			existing.Category = category
			existing.UpdatedAt = now
			if err := tx.WriteVote(ctx, existing); err != nil {
				return err
			}
			delta := categoryDelta(category, 1)
			dec := categoryDelta(old, -1)
			delta.Trusted += dec.Trusted
			delta.Suspicious += dec.Suspicious
			delta.Untrusted += dec.Untrusted
			agg, err = tx.UpdatePostAggregate(ctx, postID, delta)
			return err
		}
	})
	if err != nil {
		return model.VoteAggregate{}, err
	}
	return agg, nil
}

// categoryDelta returns a delta touching only the given category's counter.
func categoryDelta(c model.Category, n int) model.AggregateDelta {
	var d model.AggregateDelta
	switch c {
	case model.CategoryTrusted:
		d.Trusted = n
	case model.CategorySuspicious:
		d.Suspicious = n
	case model.CategoryUntrusted:
		d.Untrusted = n
	}
	return d
}
