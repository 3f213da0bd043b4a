package scheduler

import (
	"context"
	"sync"
	"time"

	"distill/internal/logger"
	"distill/internal/service"
)

// Scheduler periodically pulls new items from all sources and runs the
// pending documents through the processing batch.
type Scheduler struct {
	ingest     service.IngestService
	process    service.ProcessService
	interval   time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current cycle
	mu         sync.Mutex         // protects cancelFunc
}

func New(ingest service.IngestService, process service.ProcessService, interval time.Duration) *Scheduler {
	return &Scheduler{
		ingest:   ingest,
		process:  process,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

func (s *Scheduler) Stop() {
	// Cancel any ongoing cycle first
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.cycle()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cycle()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) cycle() {
	// Use the same timeout as the interval
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	// Store cancel function so Stop() can cancel an ongoing cycle
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	logger.Info("scheduled cycle started", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "ok")

	if err := s.ingest.RefreshAll(ctx); err != nil {
		if ctx.Err() != nil {
			logger.Warn("scheduled cycle cancelled", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "cancelled")
			return
		}
		logger.Error("scheduled ingest failed", "module", "scheduler", "action", "cycle", "resource", "sources", "result", "failed", "error", err)
	}

	tally, err := s.process.ProcessPending(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("scheduled cycle cancelled", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "cancelled")
			return
		}
		logger.Error("scheduled processing failed", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "failed", "error", err)
		return
	}

	logger.Info("scheduled cycle completed", "module", "scheduler", "action", "cycle", "resource", "documents", "result", "ok",
		"total", tally.Total, "processed", tally.Processed, "failed", tally.Failed, "skipped", tally.Skipped)
}
