package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linkwise/linkwise/internal/model"
)

func newTestEngine(f *fakeStore) *Engine {
	return NewEngine(f, nil, Config{})
}

func TestGetPage_FirstPageServedFromCache(t *testing.T) {
	f := newFakeStore(&model.Post{ID: "p1"})
	e := newTestEngine(f)
	ctx := context.Background()

	if _, err := e.Posts.GetPage(ctx, model.SortNew, 20, ""); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := e.Posts.GetPage(ctx, model.SortNew, 20, ""); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if n := f.pageCalls.Load(); n != 1 {
		t.Fatalf("store calls = %d, want 1 (second read should hit the cache)", n)
	}
	if e.CacheHits() != 1 || e.CacheMisses() != 1 {
		t.Fatalf("hits/misses = %d/%d, want 1/1", e.CacheHits(), e.CacheMisses())
	}
}

func TestGetPage_DifferentParamsAreDistinctKeys(t *testing.T) {
	f := newFakeStore(&model.Post{ID: "p1"})
	e := newTestEngine(f)
	ctx := context.Background()

	e.Posts.GetPage(ctx, model.SortNew, 20, "")
	e.Posts.GetPage(ctx, model.SortTop, 20, "")
	e.Posts.GetPage(ctx, model.SortNew, 50, "")

	if n := f.pageCalls.Load(); n != 3 {
		t.Fatalf("store calls = %d, want 3", n)
	}
}

func TestGetPage_DeeperPagesBypassCache(t *testing.T) {
	f := newFakeStore(&model.Post{ID: "p1"})
	e := newTestEngine(f)
	ctx := context.Background()

	e.Posts.GetPage(ctx, model.SortNew, 20, "some-cursor")
	e.Posts.GetPage(ctx, model.SortNew, 20, "some-cursor")

	if n := f.pageCalls.Load(); n != 2 {
		t.Fatalf("store calls = %d, want 2 (non-first pages are never cached)", n)
	}
}

func TestGetPage_FailedFetchNotCached(t *testing.T) {
	f := newFakeStore(&model.Post{ID: "p1"})
	e := newTestEngine(f)
	ctx := context.Background()

	wantErr := errors.New("store down")
	f.mu.Lock()
	f.pageErr = wantErr
	f.mu.Unlock()

	if _, err := e.Posts.GetPage(ctx, model.SortNew, 20, ""); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	f.mu.Lock()
	f.pageErr = nil
	f.mu.Unlock()

	if _, err := e.Posts.GetPage(ctx, model.SortNew, 20, ""); err != nil {
		t.Fatalf("recovery call: %v", err)
	}
	if n := f.pageCalls.Load(); n != 2 {
		t.Fatalf("store calls = %d, want 2 (failure must not be cached)", n)
	}
}

func TestCreate_InvalidatesCachedPages(t *testing.T) {
	f := newFakeStore(&model.Post{ID: "p1"})
	e := newTestEngine(f)
	ctx := context.Background()

	e.Posts.GetPage(ctx, model.SortNew, 20, "")

	if _, err := e.Posts.Create(ctx, model.NewPost{URL: "https://example.com", Title: "t", OwnerID: "u1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	e.Posts.GetPage(ctx, model.SortNew, 20, "")
	if n := f.pageCalls.Load(); n != 2 {
		t.Fatalf("store calls = %d, want 2 (create must drop cached pages)", n)
	}
}
