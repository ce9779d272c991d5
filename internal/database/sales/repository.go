// Package sales answers the sales-by-publisher lookup.
//
// # Usage
//
//	repo := sales.NewRepository(db)
//	rows, err := repo.SalesByPublisher(ctx, "1")     // publisher id 1
//	rows, err = repo.SalesByPublisher(ctx, "Reilly") // name contains "Reilly"
package sales

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mrlokans/booksales/internal/entities"
)

// Row is one sale of a publisher's book: title, shop, price and date.
type Row struct {
	Title    string          `json:"title"`
	ShopName string          `json:"shop_name"`
	Price    decimal.Decimal `json:"price"`
	DateSale time.Time       `json:"date_sale"`
}

// Repository handles the sales join query.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sales repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IsNumericKey reports whether key selects a publisher by id rather than by name.
func IsNumericKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SalesByPublisher joins publisher, book, stock, shop and sale and returns every
// sale of a matching publisher's books in database order. A purely numeric key
// matches the publisher id exactly; any other key is a case-sensitive substring
// of the publisher name.
func (r *Repository) SalesByPublisher(ctx context.Context, key string) ([]Row, error) {
	q := r.db.WithContext(ctx).
		Table(entities.TablePublisher).
		Select("book.title AS title, shop.name AS shop_name, sale.price AS price, sale.date_sale AS date_sale").
		Joins("JOIN book ON book.id_publisher = publisher.id").
		Joins("JOIN stock ON stock.id_book = book.id").
		Joins("JOIN shop ON shop.id = stock.id_shop").
		Joins("JOIN sale ON sale.id_stock = stock.id")

	if IsNumericKey(key) {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			// Out of range for an id column, so nothing can match.
			return []Row{}, nil
		}
		q = q.Where("publisher.id = ?", id)
	} else {
		q = q.Where(r.containsClause(), key)
	}

	rows := []Row{}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query sales for publisher %q: %w", key, err)
	}
	return rows, nil
}

// containsClause avoids LIKE, which SQLite compares case-insensitively and
// which would treat % and _ in the key as wildcards.
func (r *Repository) containsClause() string {
	if r.db.Dialector.Name() == "postgres" {
		return "strpos(publisher.name, ?) > 0"
	}
	return "instr(publisher.name, ?) > 0"
}
