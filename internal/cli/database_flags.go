package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/database"
)

// DatabaseFlags are the connection flags shared by every command.
type DatabaseFlags struct {
	Driver   string
	Path     string
	DSN      string
	LogLevel string
}

// Register adds -driver, -db, -dsn and -log-level to fs, defaulting to cfg.
func (f *DatabaseFlags) Register(fs *flag.FlagSet, cfg config.Database) {
	fs.StringVar(&f.Driver, "driver", cfg.Driver, "Database driver: sqlite or postgres")
	fs.StringVar(&f.Path, "db", cfg.Path, "Path to the SQLite database file")
	fs.StringVar(&f.DSN, "dsn", cfg.DSN, "PostgreSQL connection string (postgres driver only)")
	fs.StringVar(&f.LogLevel, "log-level", cfg.LogLevel, "SQL log level: silent, error, warn, info")
}

func (f DatabaseFlags) Config() config.Database {
	return config.Database{
		Driver:   f.Driver,
		Path:     f.Path,
		DSN:      f.DSN,
		LogLevel: f.LogLevel,
	}
}

// open connects and makes sure the catalog tables exist.
func (f DatabaseFlags) open() (*database.Database, error) {
	db, err := database.NewDatabase(f.Config())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// openReadOnly connects without touching the schema.
func (f DatabaseFlags) openReadOnly() (*database.Database, error) {
	gdb, err := database.Open(f.Config())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &database.Database{DB: gdb}, nil
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func stdin(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}
