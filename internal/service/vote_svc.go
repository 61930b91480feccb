package service

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/linkwise/linkwise/internal/consensus"
	"github.com/linkwise/linkwise/internal/flight"
	"github.com/linkwise/linkwise/internal/ledger"
	"github.com/linkwise/linkwise/internal/model"
)

// voteChangesChannel is the Redis pub/sub channel sibling instances listen
// on to drop their local caches after a committed vote.
const voteChangesChannel = "vote_changes"

// VoteService runs vote submissions through the ledger and performs the
// coarse cache invalidation that follows every committed write.
type VoteService struct {
	ledger *ledger.Ledger
	posts  *PostService
	stats  *StatsService
	group  *flight.Group[model.VoteAggregate]
	rdb    *redis.Client // nil disables cross-instance invalidation
}

// Submit validates and records a vote, returning the authoritative updated
// aggregate plus the consensus derived from it. Submissions are
// deduplicated by (post, voter) so a double-click cannot produce two
// in-flight writes.
func (s *VoteService) Submit(ctx context.Context, req model.VoteRequest) (*model.VoteResponse, error) {
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("vote:%s:%s", req.PostID, req.VoterID)
	writeCtx := context.WithoutCancel(ctx)
	agg, err := s.group.Do(key, func() (model.VoteAggregate, error) {
		return s.ledger.Submit(writeCtx, req.PostID, req.VoterID, category)
	})
	if err != nil {
		return nil, err
	}

	// Coarse invalidation: every cached posts page and the stats entry.
	s.posts.InvalidatePages()
	s.stats.Invalidate()
	s.publishChange(writeCtx, req.PostID)

	return &model.VoteResponse{
		Success:   true,
		Category:  category,
		Aggregate: agg,
		Consensus: consensus.Classify(agg.Counts),
	}, nil
}

// publishChange tells sibling instances to drop their caches. Best effort;
// local state is already consistent and staleness elsewhere is bounded by
// the cache TTL.
func (s *VoteService) publishChange(ctx context.Context, postID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Publish(ctx, voteChangesChannel, postID).Err(); err != nil {
		log.Printf("vote: publish invalidation for %s: %v", postID, err)
	}
}
