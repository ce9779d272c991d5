// Package database provides the data access layer for the book sales catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, schema creation and removal, row counts
//	└── sales/           # Sales-by-publisher join query
//
// The schema is five tables (publisher, shop, book, stock, sale) declared as
// gorm models in the entities package. CreateTables and DropTables take a
// *gorm.DB so they can run against a plain connection or inside a transaction.
//
// # Drivers
//
// SQLite is the default store; foreign key enforcement is switched on through
// the connection string. PostgreSQL is selected with DATABASE_DRIVER=postgres
// and DATABASE_DSN.
//
//	db, err := database.NewDatabase(cfg.Database)
//	salesRepo := sales.NewRepository(db.DB)
//	rows, err := salesRepo.SalesByPublisher(ctx, "O'Reilly")
package database
