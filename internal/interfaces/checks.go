package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/booksales/internal/audit"
	"github.com/mrlokans/booksales/internal/cli"
	"github.com/mrlokans/booksales/internal/database"
	"github.com/mrlokans/booksales/internal/database/sales"
	"github.com/mrlokans/booksales/internal/entities"
	"github.com/mrlokans/booksales/internal/http"
	"github.com/mrlokans/booksales/internal/scheduler"
	"github.com/mrlokans/booksales/internal/seed"
	"github.com/mrlokans/booksales/internal/tasks"
)

// =============================================================================
// Catalog Models
// =============================================================================

var _ entities.CatalogRow = (*entities.Publisher)(nil)
var _ entities.CatalogRow = (*entities.Shop)(nil)
var _ entities.CatalogRow = (*entities.Book)(nil)
var _ entities.CatalogRow = (*entities.Stock)(nil)
var _ entities.CatalogRow = (*entities.Sale)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

// SalesFinder implementations
var _ http.SalesFinder = (*sales.Repository)(nil)
var _ cli.SalesFinder = (*sales.Repository)(nil)

// StatsReader implementations
var _ http.StatsReader = (*database.Database)(nil)

// =============================================================================
// Scheduling
// =============================================================================

var _ http.SeedSyncStatus = (*scheduler.SeedSyncScheduler)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ backlite.Task = tasks.LoadSeedTask{}
var _ tasks.SeedFileLoader = (*seed.Loader)(nil)
var _ tasks.ReportSaver = (*audit.Auditor)(nil)
