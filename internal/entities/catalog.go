package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table names as they appear in the seed file "model" field.
const (
	TablePublisher = "publisher"
	TableShop      = "shop"
	TableBook      = "book"
	TableStock     = "stock"
	TableSale      = "sale"
)

// CatalogRow is implemented by every catalog model.
type CatalogRow interface {
	TableName() string
	PrimaryKey() uint
}

// Primary keys are never generated: every id comes from the seed file,
// including 0.

type Publisher struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`
}

type Shop struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"uniqueIndex;size:50" json:"name"`
}

type Book struct {
	ID          uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	PublisherID uint   `gorm:"column:id_publisher;not null" json:"id_publisher"`

	// Only declared so AutoMigrate emits the foreign key constraint.
	Publisher *Publisher `gorm:"foreignKey:PublisherID" json:"-"`
}

// Stock is the quantity of one book available at one shop.
type Stock struct {
	ID     uint `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BookID uint `gorm:"column:id_book;not null" json:"id_book"`
	ShopID uint `gorm:"column:id_shop;not null" json:"id_shop"`
	Count  int  `gorm:"not null" json:"count"`

	Book *Book `gorm:"foreignKey:BookID" json:"-"`
	Shop *Shop `gorm:"foreignKey:ShopID" json:"-"`
}

type Sale struct {
	ID       uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Price    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	DateSale time.Time       `gorm:"column:date_sale;not null" json:"date_sale"`
	StockID  uint            `gorm:"column:id_stock;not null" json:"id_stock"`
	Count    int             `gorm:"not null" json:"count"`

	Stock *Stock `gorm:"foreignKey:StockID" json:"-"`
}

func (Publisher) TableName() string { return TablePublisher }
func (Shop) TableName() string      { return TableShop }
func (Book) TableName() string      { return TableBook }
func (Stock) TableName() string     { return TableStock }
func (Sale) TableName() string      { return TableSale }

func (p Publisher) PrimaryKey() uint { return p.ID }
func (s Shop) PrimaryKey() uint      { return s.ID }
func (b Book) PrimaryKey() uint      { return b.ID }
func (s Stock) PrimaryKey() uint     { return s.ID }
func (s Sale) PrimaryKey() uint      { return s.ID }
