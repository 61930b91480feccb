// Package service composes the bounded caches, request deduplicators and
// vote ledger into the operations consumed by the HTTP layer.
package service

import (
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkwise/linkwise/internal/cache"
	"github.com/linkwise/linkwise/internal/flight"
	"github.com/linkwise/linkwise/internal/ledger"
	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/store"
)

// Config holds the engine's cache tunables.
type Config struct {
	CacheTTL      time.Duration // default 5m
	CacheCapacity int           // default 100 entries per cache
}

// cacheCounters tracks hit/miss totals across both caches for metrics.
type cacheCounters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// Engine owns all mutable engine state: the typed caches and the in-flight
// registries. It is constructed explicitly and injected into handlers —
// there is no package-level registry.
type Engine struct {
	Posts *PostService
	Stats *StatsService
	Votes *VoteService

	postCache  *cache.Cache[model.PostsPage]
	statsCache *cache.Cache[model.Stats]
	counters   *cacheCounters
}

// NewEngine wires the engine over the given store. rdb may be nil; the
// cross-instance invalidation publish then becomes a no-op.
func NewEngine(st store.Store, rdb *redis.Client, cfg Config) *Engine {
	postCache := cache.New[model.PostsPage](cfg.CacheTTL, cfg.CacheCapacity)
	statsCache := cache.New[model.Stats](cfg.CacheTTL, cfg.CacheCapacity)
	counters := &cacheCounters{}

	posts := &PostService{
		store:    st,
		cache:    postCache,
		group:    &flight.Group[model.PostsPage]{},
		counters: counters,
	}
	stats := &StatsService{
		store:    st,
		cache:    statsCache,
		group:    &flight.Group[model.Stats]{},
		counters: counters,
	}
	votes := &VoteService{
		ledger: ledger.New(st),
		posts:  posts,
		stats:  stats,
		group:  &flight.Group[model.VoteAggregate]{},
		rdb:    rdb,
	}

	return &Engine{
		Posts:      posts,
		Stats:      stats,
		Votes:      votes,
		postCache:  postCache,
		statsCache: statsCache,
		counters:   counters,
	}
}

// CacheInfo returns a diagnostic snapshot of cache and deduplicator state.
func (e *Engine) CacheInfo() model.CacheInfo {
	return model.CacheInfo{
		PostEntries:  e.postCache.Len(),
		StatsEntries: e.statsCache.Len(),
		Capacity:     e.postCache.Capacity() + e.statsCache.Capacity(),
		InFlightKeys: e.Posts.group.Len() + e.Stats.group.Len() + e.Votes.group.Len(),
	}
}

// CacheHits returns the total cache hits since startup.
func (e *Engine) CacheHits() int64 { return e.counters.hits.Load() }

// CacheMisses returns the total cache misses since startup.
func (e *Engine) CacheMisses() int64 { return e.counters.misses.Load() }

// InvalidateAll drops every cached entry. Used by the cross-instance
// invalidation worker.
func (e *Engine) InvalidateAll() {
	e.postCache.InvalidateAll()
	e.statsCache.InvalidateAll()
}
