// Package seed reads catalog seed files and loads them into the store.
//
// A seed file is a JSON array of records:
//
//	[
//	  {"model": "publisher", "pk": 1, "fields": {"name": "O'Reilly"}},
//	  {"model": "book", "pk": 1, "fields": {"title": "Cats", "id_publisher": 1}}
//	]
//
// Loading is insert-only: a record whose primary key already exists in its
// table is skipped, even if its fields differ from the stored row.
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrlokans/booksales/internal/entities"
)

// Kind identifies the catalog table a record belongs to.
// Kinds are ordered so that parents come before the rows referencing them.
type Kind int

const (
	KindPublisher Kind = iota
	KindShop
	KindBook
	KindStock
	KindSale
)

var kindNames = [...]string{
	KindPublisher: entities.TablePublisher,
	KindShop:      entities.TableShop,
	KindBook:      entities.TableBook,
	KindStock:     entities.TableStock,
	KindSale:      entities.TableSale,
}

// Kinds returns every kind in insert order.
func Kinds() []Kind {
	return []Kind{KindPublisher, KindShop, KindBook, KindStock, KindSale}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a seed "model" value to its kind.
func ParseKind(model string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == model {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown model %q", model)
}

// Model returns an empty model of the kind's table, or nil for an unknown kind.
func (k Kind) Model() entities.CatalogRow {
	switch k {
	case KindPublisher:
		return &entities.Publisher{}
	case KindShop:
		return &entities.Shop{}
	case KindBook:
		return &entities.Book{}
	case KindStock:
		return &entities.Stock{}
	case KindSale:
		return &entities.Sale{}
	default:
		return nil
	}
}

// Record is one seed entry. Row is a pointer to the entities model matching
// Kind, with its ID set to PK.
type Record struct {
	Kind Kind
	PK   uint
	Row  entities.CatalogRow
}

type rawRecord struct {
	Model  string          `json:"model"`
	PK     *uint           `json:"pk"`
	Fields json.RawMessage `json:"fields"`
}

type namedFields struct {
	Name string `json:"name"`
}

// Foreign keys accept both the column spelling (id_publisher) and the
// field spelling (publisher_id).
type bookFields struct {
	Title       *string `json:"title"`
	IDPublisher *uint   `json:"id_publisher"`
	PublisherID *uint   `json:"publisher_id"`
}

type stockFields struct {
	IDBook *uint `json:"id_book"`
	BookID *uint `json:"book_id"`
	IDShop *uint `json:"id_shop"`
	ShopID *uint `json:"shop_id"`
	Count  *int  `json:"count"`
}

type saleFields struct {
	Price    *decimal.Decimal `json:"price"`
	DateSale *string          `json:"date_sale"`
	Date     *string          `json:"date"`
	IDStock  *uint            `json:"id_stock"`
	StockID  *uint            `json:"stock_id"`
	Count    *int             `json:"count"`
}

// Decode parses a seed file. Unknown models, missing primary keys, unknown or
// missing required fields and unparseable dates are errors.
func Decode(r io.Reader) ([]Record, error) {
	var raw []rawRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(item rawRecord) (Record, error) {
	kind, err := ParseKind(item.Model)
	if err != nil {
		return Record{}, err
	}
	if item.PK == nil {
		return Record{}, fmt.Errorf("%s record has no pk", kind)
	}
	pk := *item.PK

	var row entities.CatalogRow
	switch kind {
	case KindPublisher, KindShop:
		var f namedFields
		if err := decodeFields(item.Fields, &f); err != nil {
			return Record{}, fmt.Errorf("%s pk=%d: %w", kind, pk, err)
		}
		if kind == KindPublisher {
			row = &entities.Publisher{ID: pk, Name: f.Name}
		} else {
			row = &entities.Shop{ID: pk, Name: f.Name}
		}

	case KindBook:
		var f bookFields
		if err := decodeFields(item.Fields, &f); err != nil {
			return Record{}, fmt.Errorf("book pk=%d: %w", pk, err)
		}
		publisherID := firstSet(f.IDPublisher, f.PublisherID)
		if f.Title == nil || publisherID == nil {
			return Record{}, fmt.Errorf("book pk=%d: title and id_publisher are required", pk)
		}
		row = &entities.Book{ID: pk, Title: *f.Title, PublisherID: *publisherID}

	case KindStock:
		var f stockFields
		if err := decodeFields(item.Fields, &f); err != nil {
			return Record{}, fmt.Errorf("stock pk=%d: %w", pk, err)
		}
		bookID := firstSet(f.IDBook, f.BookID)
		shopID := firstSet(f.IDShop, f.ShopID)
		if bookID == nil || shopID == nil || f.Count == nil {
			return Record{}, fmt.Errorf("stock pk=%d: id_book, id_shop and count are required", pk)
		}
		row = &entities.Stock{ID: pk, BookID: *bookID, ShopID: *shopID, Count: *f.Count}

	case KindSale:
		var f saleFields
		if err := decodeFields(item.Fields, &f); err != nil {
			return Record{}, fmt.Errorf("sale pk=%d: %w", pk, err)
		}
		stockID := firstSet(f.IDStock, f.StockID)
		date := f.DateSale
		if date == nil {
			date = f.Date
		}
		if f.Price == nil || date == nil || stockID == nil || f.Count == nil {
			return Record{}, fmt.Errorf("sale pk=%d: price, date_sale, id_stock and count are required", pk)
		}
		dateSale, err := ParseDate(*date)
		if err != nil {
			return Record{}, fmt.Errorf("sale pk=%d: %w", pk, err)
		}
		row = &entities.Sale{
			ID:       pk,
			Price:    f.Price.Round(2),
			DateSale: dateSale,
			StockID:  *stockID,
			Count:    *f.Count,
		}
	}

	return Record{Kind: kind, PK: pk, Row: row}, nil
}

func decodeFields(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return fmt.Errorf("fields are missing")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid fields: %w", err)
	}
	return nil
}

func firstSet(values ...*uint) *uint {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps, ISO timestamps without a zone
// (read as UTC) and bare dates.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
