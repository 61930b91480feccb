package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linkwise/linkwise/internal/model"
	"github.com/linkwise/linkwise/internal/store"
)

// fakeStore is an in-memory store.Store that counts calls and can block or
// fail on demand, for exercising the caching and dedup paths.
type fakeStore struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	votes map[string]*model.Vote

	pageCalls  atomic.Int64
	statsCalls atomic.Int64

	statsBlock chan struct{} // if set, FetchStats waits on it
	pageErr    error
	statsErr   error
}

func newFakeStore(posts ...*model.Post) *fakeStore {
	f := &fakeStore{
		posts: make(map[string]*model.Post),
		votes: make(map[string]*model.Vote),
	}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakeStore) FetchPostsPage(ctx context.Context, sort model.SortMode, size int, cursor string) (model.PostsPage, error) {
	f.pageCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pageErr != nil {
		return model.PostsPage{}, f.pageErr
	}
	page := model.PostsPage{}
	for _, p := range f.posts {
		page.Posts = append(page.Posts, *p)
	}
	return page, nil
}

func (f *fakeStore) FetchStats(ctx context.Context) (model.Stats, error) {
	f.statsCalls.Add(1)
	f.mu.Lock()
	block := f.statsBlock
	err := f.statsErr
	nPosts, nVotes := len(f.posts), len(f.votes)
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{TotalPosts: nPosts, TotalVotes: nVotes}, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, np model.NewPost) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &model.Post{
		ID:        fmt.Sprintf("post-%d", len(f.posts)+1),
		URL:       np.URL,
		Title:     np.Title,
		OwnerID:   np.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	f.posts[p.ID] = p
	return *p, nil
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(store.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn((*fakeTx)(f))
}

// fakeTx reuses the fakeStore maps; f.mu is already held by WithTx.
type fakeTx fakeStore

func (t *fakeTx) GetPost(ctx context.Context, postID string) (model.Post, error) {
	p, ok := t.posts[postID]
	if !ok {
		return model.Post{}, store.ErrNotFound
	}
	return *p, nil
}

func (t *fakeTx) GetVote(ctx context.Context, postID, voterID string) (*model.Vote, error) {
	v, ok := t.votes[postID+"/"+voterID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (t *fakeTx) WriteVote(ctx context.Context, v *model.Vote) error {
	cp := *v
	t.votes[v.PostID+"/"+v.VoterID] = &cp
	return nil
}

func (t *fakeTx) UpdatePostAggregate(ctx context.Context, postID string, delta model.AggregateDelta) (model.VoteAggregate, error) {
	p, ok := t.posts[postID]
	if !ok {
		return model.VoteAggregate{}, store.ErrNotFound
	}
	p.Counts.Trusted += delta.Trusted
	p.Counts.Suspicious += delta.Suspicious
	p.Counts.Untrusted += delta.Untrusted
	p.TotalVotes += delta.Total
	now := time.Now().UTC()
	p.LastVoteAt = &now
	return model.VoteAggregate{
		PostID:     p.ID,
		Counts:     p.Counts,
		TotalVotes: p.TotalVotes,
		LastVoteAt: p.LastVoteAt,
	}, nil
}
