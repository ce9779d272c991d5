package sales

import (
	"encoding/json"
	"fmt"
	"time"
)

// FormatRow renders a row as "title | shop | price | date" with the title
// padded to 40 characters, the shop name to 10 and the price to 8.
// Longer values are not truncated.
func FormatRow(row Row) string {
	return fmt.Sprintf("%-40s | %-10s | %-8s | %s",
		row.Title, row.ShopName, row.Price.StringFixed(2), FormatDate(row.DateSale))
}

// FormatDate prints a bare date for midnight timestamps and the full time otherwise.
func FormatDate(t time.Time) string {
	t = t.UTC()
	switch {
	case t.Nanosecond() != 0:
		return t.Format("2006-01-02 15:04:05.000000")
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		return t.Format("2006-01-02")
	default:
		return t.Format("2006-01-02 15:04:05")
	}
}

// MarshalJSON writes the price with two decimals, the same as FormatRow.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title    string    `json:"title"`
		ShopName string    `json:"shop_name"`
		Price    string    `json:"price"`
		DateSale time.Time `json:"date_sale"`
	}{
		Title:    r.Title,
		ShopName: r.ShopName,
		Price:    r.Price.StringFixed(2),
		DateSale: r.DateSale,
	})
}
