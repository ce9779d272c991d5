package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booksales/internal/audit"
	"github.com/mrlokans/booksales/internal/seed"
)

const LoadSeedQueueName = "load_seed"

// SeedFileLoader applies a seed file to the catalog.
type SeedFileLoader interface {
	LoadFile(ctx context.Context, path string) (seed.Result, error)
}

// ReportSaver persists load reports.
type ReportSaver interface {
	SaveReport(report audit.LoadReport) (string, error)
}

// LoadSeedTask loads a seed file into the catalog in the background.
type LoadSeedTask struct {
	Path    string `json:"path"`
	Trigger string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for seed load tasks.
// Loads are not retried: a failed load is reported and the next run picks it up.
func (t LoadSeedTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        LoadSeedQueueName,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// LoadSeedProcessor creates a processor function for LoadSeedTask.
// The auditor is optional.
func LoadSeedProcessor(loader SeedFileLoader, auditor ReportSaver) backlite.QueueProcessor[LoadSeedTask] {
	return func(ctx context.Context, task LoadSeedTask) error {
		if loader == nil {
			return fmt.Errorf("seed loader not configured")
		}
		if task.Path == "" {
			return fmt.Errorf("seed file path is required")
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = "task"
		}

		startedAt := time.Now()
		result, err := loader.LoadFile(ctx, task.Path)

		if auditor != nil {
			report := audit.NewLoadReport(trigger, task.Path, startedAt, result, err)
			if _, saveErr := auditor.SaveReport(report); saveErr != nil {
				log.Printf("[TASK ERROR] Failed to save load report: %v", saveErr)
			}
		}

		if err != nil {
			return fmt.Errorf("load seed %s: %w", task.Path, err)
		}

		log.Printf("[TASK] Loaded seed %s: %d inserted, %d skipped",
			task.Path, result.TotalInserted(), result.TotalSkipped())
		return nil
	}
}

// NewLoadSeedQueue creates a backlite queue for seed load tasks.
func NewLoadSeedQueue(loader SeedFileLoader, auditor ReportSaver) backlite.Queue {
	return backlite.NewQueue(LoadSeedProcessor(loader, auditor))
}
