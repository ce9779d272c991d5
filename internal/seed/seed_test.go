package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booksales/internal/entities"
)

const exampleSeed = `[
  {"model": "publisher", "pk": 1, "fields": {"name": "O'Reilly"}},
  {"model": "book", "pk": 1, "fields": {"title": "Cats", "publisher_id": 1}},
  {"model": "shop", "pk": 1, "fields": {"name": "MainShop"}},
  {"model": "stock", "pk": 1, "fields": {"book_id": 1, "shop_id": 1, "count": 5}},
  {"model": "sale", "pk": 1, "fields": {"price": 9.99, "date": "2024-01-01", "stock_id": 1, "count": 1}}
]`

func TestDecode_Example(t *testing.T) {
	records, err := Decode(strings.NewReader(exampleSeed))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, KindPublisher, records[0].Kind)
	assert.Equal(t, uint(1), records[0].PK)
	assert.Equal(t, &entities.Publisher{ID: 1, Name: "O'Reilly"}, records[0].Row)

	assert.Equal(t, &entities.Book{ID: 1, Title: "Cats", PublisherID: 1}, records[1].Row)
	assert.Equal(t, &entities.Stock{ID: 1, BookID: 1, ShopID: 1, Count: 5}, records[3].Row)

	sale, ok := records[4].Row.(*entities.Sale)
	require.True(t, ok)
	assert.Equal(t, "9.99", sale.Price.StringFixed(2))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sale.DateSale)
	assert.Equal(t, uint(1), sale.StockID)
	assert.Equal(t, 1, sale.Count)
}

func TestDecode_ColumnSpelling(t *testing.T) {
	input := `[
	  {"model": "book", "pk": 3, "fields": {"title": "Dogs", "id_publisher": 2}},
	  {"model": "stock", "pk": 4, "fields": {"id_book": 3, "id_shop": 1, "count": 10}},
	  {"model": "sale", "pk": 5, "fields": {"price": "50.05", "date_sale": "2018-10-25T09:45:24.552Z", "id_stock": 4, "count": 16}}
	]`

	records, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, &entities.Book{ID: 3, Title: "Dogs", PublisherID: 2}, records[0].Row)
	assert.Equal(t, &entities.Stock{ID: 4, BookID: 3, ShopID: 1, Count: 10}, records[1].Row)

	sale := records[2].Row.(*entities.Sale)
	assert.Equal(t, "50.05", sale.Price.StringFixed(2))
	assert.Equal(t, time.Date(2018, 10, 25, 9, 45, 24, 552000000, time.UTC), sale.DateSale)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not json", `{nope`, "failed to parse seed file"},
		{"unknown model", `[{"model": "author", "pk": 1, "fields": {}}]`, `unknown model "author"`},
		{"missing pk", `[{"model": "shop", "fields": {"name": "A"}}]`, "has no pk"},
		{"missing fields", `[{"model": "shop", "pk": 1}]`, "fields are missing"},
		{"unknown field", `[{"model": "shop", "pk": 1, "fields": {"name": "A", "city": "B"}}]`, "invalid fields"},
		{"book without publisher", `[{"model": "book", "pk": 1, "fields": {"title": "A"}}]`, "id_publisher are required"},
		{"stock without count", `[{"model": "stock", "pk": 1, "fields": {"id_book": 1, "id_shop": 1}}]`, "count are required"},
		{"sale without price", `[{"model": "sale", "pk": 1, "fields": {"date_sale": "2024-01-01", "id_stock": 1, "count": 1}}]`, "price, date_sale"},
		{"sale with bad date", `[{"model": "sale", "pk": 1, "fields": {"price": 1, "date_sale": "yesterday", "id_stock": 1, "count": 1}}]`, "unrecognized date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_ReportsRecordIndex(t *testing.T) {
	input := `[
	  {"model": "shop", "pk": 1, "fields": {"name": "A"}},
	  {"model": "warehouse", "pk": 2, "fields": {}}
	]`
	_, err := Decode(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed record 1")
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
		assert.Equal(t, kind.String(), kind.Model().TableName())
	}

	_, err := ParseKind("Publisher")
	assert.Error(t, err, "model names are case-sensitive")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2018-10-25T09:45:24.552Z", time.Date(2018, 10, 25, 9, 45, 24, 552000000, time.UTC)},
		{"2018-10-25T09:45:24", time.Date(2018, 10, 25, 9, 45, 24, 0, time.UTC)},
		{"2018-10-25 09:45:24", time.Date(2018, 10, 25, 9, 45, 24, 0, time.UTC)},
		{"2018-10-25T12:45:24+03:00", time.Date(2018, 10, 25, 9, 45, 24, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	_, err := ParseDate("25/10/2018")
	assert.Error(t, err)
}

func TestKindModel(t *testing.T) {
	for _, kind := range Kinds() {
		model := kind.Model()
		require.NotNil(t, model, kind.String())
		assert.Equal(t, kind.String(), model.TableName())
	}
	assert.Nil(t, Kind(len(Kinds())).Model())
	assert.Nil(t, Kind(-1).Model())
}
