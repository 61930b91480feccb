package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// InvalidationWorker subscribes to the vote_changes channel and drops the
// local caches when sibling instances commit votes. Notifications are
// batched: a burst of votes inside one window costs a single invalidation.
type InvalidationWorker struct {
	rdb     *redis.Client
	engine  *Engine
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // post IDs seen this window
}

// NewInvalidationWorker creates the worker. rdb may be nil, in which case
// Start returns immediately.
func NewInvalidationWorker(rdb *redis.Client, engine *Engine) *InvalidationWorker {
	return &InvalidationWorker{
		rdb:     rdb,
		engine:  engine,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start consumes invalidation notifications until ctx is cancelled,
// reconnecting with a delay after subscription failures.
func (w *InvalidationWorker) Start(ctx context.Context) {
	if w.rdb == nil {
		log.Println("invalidation-worker: redis not configured, skipping")
		return
	}
	log.Printf("invalidation-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("invalidation-worker: stopping (context cancelled)")
				return
			}
			log.Printf("invalidation-worker: subscribe error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("invalidation-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

func (w *InvalidationWorker) listenLoop(ctx context.Context) error {
	pubsub := w.rdb.Subscribe(ctx, voteChangesChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	log.Printf("invalidation-worker: subscribed to %s", voteChangesChannel)

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return ctx.Err()
			}
			if msg.Payload == "" {
				continue
			}
			w.mu.Lock()
			w.pending[msg.Payload] = struct{}{}
			w.mu.Unlock()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *InvalidationWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush()
		case <-ctx.Done():
			w.flush()
			return
		}
	}
}

// flush drops the local caches once per window regardless of how many
// posts changed; invalidation is coarse anyway.
func (w *InvalidationWorker) flush() {
	w.mu.Lock()
	n := len(w.pending)
	if n == 0 {
		w.mu.Unlock()
		return
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	w.engine.InvalidateAll()
	log.Printf("invalidation-worker: caches dropped (%d posts changed)", n)
}
