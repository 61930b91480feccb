package service

import (
	"context"

	"github.com/linkwise/linkwise/internal/cache"
	"github.com/linkwise/linkwise/internal/flight"
	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/store"
)

// statsKey is the single cache key for global statistics.
const statsKey = "stats"

// StatsService serves global statistics through the bounded cache and the
// request deduplicator.
type StatsService struct {
	store    store.Store
	cache    *cache.Cache[model.Stats]
	group    *flight.Group[model.Stats]
	counters *cacheCounters
}

// Get returns global statistics. refresh bypasses the cache read but a
// successful result still repopulates the cache. Concurrent fetches against
// a cold cache share exactly one store call.
func (s *StatsService) Get(ctx context.Context, refresh bool) (model.Stats, error) {
	if !refresh {
		if stats, ok := s.cache.Get(statsKey); ok {
			s.counters.hits.Add(1)
			return stats, nil
		}
		s.counters.misses.Add(1)
	}

	fetchCtx := context.WithoutCancel(ctx)
	stats, err := s.group.Do(statsKey, func() (model.Stats, error) {
		return s.store.FetchStats(fetchCtx)
	})
	if err != nil {
		return model.Stats{}, err
	}

	s.cache.Set(statsKey, stats)
	return stats, nil
}

// Cached returns the cached statistics without touching the store. Used to
// degrade gracefully when the store is unavailable.
func (s *StatsService) Cached() (model.Stats, bool) {
	return s.cache.Get(statsKey)
}

// Invalidate drops the cached statistics.
func (s *StatsService) Invalidate() {
	s.cache.Invalidate(statsKey)
}
