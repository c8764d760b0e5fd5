package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"TradePilot/internal/model"
	"TradePilot/internal/rank"
)

// Scheduler periodically re-ranks the watchlist so the dashboard's top-stocks
// view is served from a warm cache.
type Scheduler struct {
	cron      *cron.Cron
	analyzer  *rank.Analyzer
	watchlist []string
	tf        model.Timeframe

	mu        sync.RWMutex
	latest    []model.StockInfo
	refreshed time.Time
}

// New creates a Scheduler over the given watchlist.
func New(analyzer *rank.Analyzer, watchlist []string, tf model.Timeframe) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		analyzer:  analyzer,
		watchlist: watchlist,
		tf:        tf,
	}
}

// Register schedules the refresh job with a six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh immediately (manual trigger / warm-up on boot).
func (s *Scheduler) RunNow() { s.refresh() }

func (s *Scheduler) refresh() {
	started := time.Now()
	stocks := s.analyzer.Analyze(context.Background(), s.watchlist, s.tf, 0)

	s.mu.Lock()
	s.latest = stocks
	s.refreshed = time.Now()
	s.mu.Unlock()

	log.Printf("[INFO] watchlist refreshed: %d/%d symbols in %v", len(stocks), len(s.watchlist), time.Since(started))
}

// Latest returns the most recent ranking and when it was computed. The slice
// is shared read-only.
func (s *Scheduler) Latest() ([]model.StockInfo, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.refreshed
}
