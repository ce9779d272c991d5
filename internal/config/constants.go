package config

// Default paths and connection settings
const (
	// DefaultDatabasePath is the default path for the SQLite catalog database
	DefaultDatabasePath = "./booksales.db"

	// DefaultSeedFile is the seed file loaded by the run and load commands
	DefaultSeedFile = "./data.json"

	// DefaultTasksDatabasePath is used for the task queue when the catalog
	// is not a local SQLite file
	DefaultTasksDatabasePath = "./booksales-tasks.db"

	// DefaultDatabaseDriver is used when DATABASE_DRIVER is not set
	DefaultDatabaseDriver = DriverSQLite
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
