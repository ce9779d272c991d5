package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_CreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"publisher", "shop", "book", "stock", "sale"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestNewDatabase_InvalidConfig(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "oracle", Path: "x.db"})
	assert.Error(t, err)

	_, err = NewDatabase(config.Database{Driver: config.DriverPostgres})
	assert.Error(t, err)
}

func TestCreateTables_IsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Create(&entities.Publisher{ID: 1, Name: "Keep Me"}).Error)
	require.NoError(t, CreateTables(db.DB))

	var count int64
	require.NoError(t, db.DB.Model(&entities.Publisher{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDropTables(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, DropTables(db.DB))
	for _, model := range CatalogModels() {
		assert.False(t, db.DB.Migrator().HasTable(model), "table %s should be dropped", model.TableName())
	}

	// Dropping again is a no-op.
	assert.NoError(t, DropTables(db.DB))

	require.NoError(t, CreateTables(db.DB))
	assert.True(t, db.DB.Migrator().HasTable(&entities.Sale{}))
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db := setupTestDB(t)

	err := db.DB.Create(&entities.Book{ID: 1, Title: "Orphan", PublisherID: 99}).Error
	assert.Error(t, err, "book must reference an existing publisher")

	err = db.DB.Create(&entities.Stock{ID: 1, BookID: 1, ShopID: 1, Count: 1}).Error
	assert.Error(t, err, "stock must reference an existing book and shop")

	err = db.DB.Create(&entities.Sale{
		ID:       1,
		Price:    decimal.RequireFromString("1.00"),
		DateSale: time.Now(),
		StockID:  1,
		Count:    1,
	}).Error
	assert.Error(t, err, "sale must reference an existing stock row")
}

func TestNamesAreUnique(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Create(&entities.Publisher{ID: 1, Name: "Penguin"}).Error)
	assert.Error(t, db.DB.Create(&entities.Publisher{ID: 2, Name: "Penguin"}).Error)

	require.NoError(t, db.DB.Create(&entities.Shop{ID: 1, Name: "Penguin"}).Error, "uniqueness is per table")
	assert.Error(t, db.DB.Create(&entities.Shop{ID: 2, Name: "Penguin"}).Error)
}

func TestSalePricePrecision(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Create(&entities.Publisher{ID: 1, Name: "P"}).Error)
	require.NoError(t, db.DB.Create(&entities.Shop{ID: 1, Name: "S"}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{ID: 1, Title: "B", PublisherID: 1}).Error)
	require.NoError(t, db.DB.Create(&entities.Stock{ID: 1, BookID: 1, ShopID: 1, Count: 4}).Error)
	require.NoError(t, db.DB.Create(&entities.Sale{
		ID:       1,
		Price:    decimal.RequireFromString("50.05"),
		DateSale: time.Date(2018, 10, 25, 9, 45, 24, 0, time.UTC),
		StockID:  1,
		Count:    16,
	}).Error)

	var sale entities.Sale
	require.NoError(t, db.DB.First(&sale, 1).Error)
	assert.Equal(t, "50.05", sale.Price.StringFixed(2))
	assert.True(t, sale.DateSale.Equal(time.Date(2018, 10, 25, 9, 45, 24, 0, time.UTC)))
}

func TestCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 5)
	assert.Equal(t, int64(0), counts["publisher"])

	require.NoError(t, db.DB.Create(&entities.Publisher{ID: 1, Name: "A"}).Error)
	require.NoError(t, db.DB.Create(&entities.Publisher{ID: 2, Name: "B"}).Error)

	counts, err = db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["publisher"])
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel(""))
	assert.Equal(t, logger.Warn, ParseLogLevel("verbose"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "./a.db?_foreign_keys=on", sqliteDSN("./a.db"))
	assert.Equal(t, "./a.db?cache=shared&_foreign_keys=on", sqliteDSN("./a.db?cache=shared"))
}
