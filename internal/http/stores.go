package http

import (
	"context"
	"time"

	"github.com/mrlokans/booksales/internal/database/sales"
)

// This file consolidates the store interfaces used by HTTP controllers.

// SalesFinder looks up sales by publisher key.
type SalesFinder interface {
	SalesByPublisher(ctx context.Context, key string) ([]sales.Row, error)
}

// StatsReader reports row counts per catalog table.
type StatsReader interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// SeedSyncStatus reports on the periodic seed sync and can trigger a run.
type SeedSyncStatus interface {
	Schedule() string
	IsRunning() bool
	GetNextRunTime() *time.Time
	RunNow() error
}
