package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/booksales/internal/config"
)

// LoadFunc applies the seed file at path. It either loads inline or
// enqueues a background task.
type LoadFunc func(ctx context.Context, path string) error

// SeedSyncScheduler periodically re-applies the seed file. Loads are
// idempotent, so each run only inserts records added since the last one.
type SeedSyncScheduler struct {
	cfg      config.SeedSync
	seedFile string
	load     LoadFunc

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSeedSyncScheduler creates a new scheduler instance
func NewSeedSyncScheduler(cfg config.SeedSync, seedFile string, load LoadFunc) *SeedSyncScheduler {
	return &SeedSyncScheduler{
		cfg:      cfg,
		seedFile: seedFile,
		load:     load,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if sync is enabled
func (s *SeedSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Seed sync scheduler: disabled")
		return nil
	}

	if s.seedFile == "" {
		log.Printf("Seed sync scheduler: seed file not configured, skipping")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runSync(runCtx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule seed sync job: %w", err)
	}
	s.entryID = entryID
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.cfg.Schedule)
	log.Printf("Seed sync scheduler: started with schedule '%s' (%s). Next run: %v",
		s.cfg.Schedule,
		GetCronDescription(s.cfg.Schedule),
		nextRun)

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running load to finish
func (s *SeedSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Seed sync scheduler: stopped")
}

// RunNow triggers an immediate load
func (s *SeedSyncScheduler) RunNow() error {
	if s.seedFile == "" {
		return fmt.Errorf("seed file not configured")
	}
	go s.runSync(context.Background())
	return nil
}

// Schedule returns the configured cron expression.
func (s *SeedSyncScheduler) Schedule() string {
	return s.cfg.Schedule
}

// IsRunning returns whether the scheduler is active
func (s *SeedSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next load will occur
func (s *SeedSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *SeedSyncScheduler) runSync(ctx context.Context) {
	log.Printf("Seed sync: applying %s", s.seedFile)
	startTime := time.Now()

	if err := s.load(ctx, s.seedFile); err != nil {
		log.Printf("Seed sync: failed: %v", err)
		return
	}

	log.Printf("Seed sync: finished in %v", time.Since(startTime).Round(time.Millisecond))
}
