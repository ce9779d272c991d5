package http

import (
	"github.com/mrlokans/booksales/internal/database"
	"github.com/mrlokans/booksales/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Sales    SalesFinder

	// Seed file used when a load request does not name one
	SeedFile string

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Periodic seed sync (optional)
	SeedSync SeedSyncStatus

	// Application info
	Version string
}
