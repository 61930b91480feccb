package service

import (
	"context"
	"log"
	"time"
)

// StatsWorker periodically force-refreshes the stats cache so the first
// reader after TTL expiry does not pay for the aggregate query.
type StatsWorker struct {
	stats    *StatsService
	interval time.Duration
	stopCh   chan struct{}
}

// NewStatsWorker creates a warmer that ticks every interval.
func NewStatsWorker(stats *StatsService, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		stats:    stats,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one warm immediately, then every interval until stopped.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Printf("stats-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("stats-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("stats-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *StatsWorker) Stop() {
	close(w.stopCh)
}

func (w *StatsWorker) tick(ctx context.Context) {
	start := time.Now()
	if _, err := w.stats.Get(ctx, true); err != nil {
		log.Printf("stats-worker: refresh error: %v", err)
		return
	}
	log.Printf("stats-worker: stats cache warmed (%s)", time.Since(start).Round(time.Millisecond))
}
