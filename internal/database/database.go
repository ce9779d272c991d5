package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(cfg config.Database) (*Database, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := CreateTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("Database initialized successfully (%s)", describe(cfg))

	return &Database{DB: db}, nil
}

// Open connects to the configured store without touching the schema.
func Open(cfg config.Database) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(ParseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CatalogModels returns the catalog models in dependency order:
// every model only references models listed before it.
func CatalogModels() []entities.CatalogRow {
	return []entities.CatalogRow{
		&entities.Publisher{},
		&entities.Shop{},
		&entities.Book{},
		&entities.Stock{},
		&entities.Sale{},
	}
}

// CreateTables creates the five catalog tables and their constraints if absent.
func CreateTables(db *gorm.DB) error {
	for _, model := range CatalogModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to create table %s: %w", model.TableName(), err)
		}
	}
	return nil
}

// DropTables drops the catalog tables, children first. Missing tables are ignored.
func DropTables(db *gorm.DB) error {
	models := CatalogModels()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", models[i].TableName(), err)
		}
	}
	return nil
}

// Counts returns the number of rows per catalog table.
func (d *Database) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(CatalogModels()))
	for _, model := range CatalogModels() {
		var n int64
		if err := d.DB.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s rows: %w", model.TableName(), err)
		}
		counts[model.TableName()] = n
	}
	return counts, nil
}

// ParseLogLevel maps a config value to a gorm logger level, defaulting to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func describe(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite at " + cfg.Path
}
