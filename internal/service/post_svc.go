package service

import (
	"context"
	"fmt"

	"github.com/linkwise/linkwise/internal/cache"
	"github.com/linkwise/linkwise/internal/flight"
	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/store"
)

// postsKeyPrefix namespaces every posts-page cache key so a write can drop
// all cached pages at once.
const postsKeyPrefix = "posts:"

// PostService serves post listings through the bounded cache and the
// request deduplicator.
type PostService struct {
	store    store.Store
	cache    *cache.Cache[model.PostsPage]
	group    *flight.Group[model.PostsPage]
	counters *cacheCounters
}

// GetPage returns one page of posts. Only the first page (empty cursor) is
// read from and written back to the cache; deeper pages always go to the
// store, though concurrent identical fetches still share one call.
func (s *PostService) GetPage(ctx context.Context, sort model.SortMode, size int, cursor string) (model.PostsPage, error) {
	key := pageKey(sort, size, cursor)
	firstPage := cursor == ""

	if firstPage {
		if page, ok := s.cache.Get(key); ok {
			s.counters.hits.Add(1)
			return page, nil
		}
		s.counters.misses.Add(1)
	}

	// Joined callers still need the result even if this caller's request
	// is abandoned, so the producer runs detached from ctx cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	page, err := s.group.Do(key, func() (model.PostsPage, error) {
		return s.store.FetchPostsPage(fetchCtx, sort, size, cursor)
	})
	if err != nil {
		// A failed fetch is never cached.
		return model.PostsPage{}, err
	}

	if firstPage {
		s.cache.Set(key, page)
	}
	return page, nil
}

// Create persists a newly submitted link and drops the cached listings so
// the next read sees it.
func (s *PostService) Create(ctx context.Context, np model.NewPost) (model.Post, error) {
	post, err := s.store.CreatePost(ctx, np)
	if err != nil {
		return model.Post{}, err
	}
	s.InvalidatePages()
	return post, nil
}

// InvalidatePages drops every cached posts page (coarse invalidation).
func (s *PostService) InvalidatePages() {
	s.cache.Invalidate(postsKeyPrefix)
}

// pageKey derives a deterministic cache key from the request parameters.
func pageKey(sort model.SortMode, size int, cursor string) string {
	return fmt.Sprintf("%s%s:%d:%s", postsKeyPrefix, sort, size, cursor)
}
