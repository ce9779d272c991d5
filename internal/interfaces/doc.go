// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog Models
//
//   - CatalogRow: a row of one of the five catalog tables (internal/entities/catalog.go)
//
// ## Data Access Interfaces
//
//   - SalesFinder: sales lookup by publisher key (internal/http/stores.go, internal/cli/query.go)
//   - StatsReader: row counts per table (internal/http/stores.go)
//
// ## Task Queue Interfaces
//
//   - SeedFileLoader: applies a seed file (internal/tasks/load_seed.go)
//   - ReportSaver: persists load reports (internal/tasks/load_seed.go)
//
// # Adding a New Catalog Table
//
//  1. Define the model in internal/entities/catalog.go with TableName and
//     PrimaryKey methods.
//
//  2. Add it to database.CatalogModels after every table it references.
//
//  3. Add a seed.Kind in the same dependency position and decode its fields
//     in seed.decodeRecord.
//
//  4. Add a compile-time check:
//
//     var _ entities.CatalogRow = (*entities.Author)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
