package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booksales/internal/database/sales"
)

type fakeFinder struct {
	rows map[string][]sales.Row
	err  error
	keys []string
}

func (f *fakeFinder) SalesByPublisher(ctx context.Context, key string) ([]sales.Row, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[key], nil
}

func catsRow() sales.Row {
	return sales.Row{
		Title:    "Cats",
		ShopName: "MainShop",
		Price:    decimal.RequireFromString("9.99"),
		DateSale: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunQueryLoop_EmptyLineExits(t *testing.T) {
	finder := &fakeFinder{}
	var out strings.Builder

	err := RunQueryLoop(context.Background(), strings.NewReader("\n1\n"), &out, finder)
	require.NoError(t, err)

	assert.Empty(t, finder.keys)
	assert.Equal(t, QueryPrompt, out.String())
}

func TestRunQueryLoop_EOFExits(t *testing.T) {
	finder := &fakeFinder{}
	var out strings.Builder

	err := RunQueryLoop(context.Background(), strings.NewReader("1"), &out, finder)
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, finder.keys)
	assert.Equal(t, 2, strings.Count(out.String(), QueryPrompt))
}

func TestRunQueryLoop_PrintsRowsPerKey(t *testing.T) {
	finder := &fakeFinder{rows: map[string][]sales.Row{
		"1":   {catsRow()},
		"Rei": {catsRow(), catsRow()},
	}}
	var out strings.Builder

	err := RunQueryLoop(context.Background(), strings.NewReader("1\nRei\nnobody\n\n"), &out, finder)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "Rei", "nobody"}, finder.keys)

	line := "Cats                                     | MainShop   | 9.99     | 2024-01-01"
	assert.Equal(t, 3, strings.Count(out.String(), line))
	assert.Equal(t, 4, strings.Count(out.String(), QueryPrompt))
}

func TestRunQueryLoop_KeepsSurroundingSpaces(t *testing.T) {
	finder := &fakeFinder{}
	var out strings.Builder

	err := RunQueryLoop(context.Background(), strings.NewReader(" O'Reilly \r\n\n"), &out, finder)
	require.NoError(t, err)

	assert.Equal(t, []string{" O'Reilly "}, finder.keys)
}

func TestRunQueryLoop_StoreErrorStops(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection lost")}
	var out strings.Builder

	err := RunQueryLoop(context.Background(), strings.NewReader("1\n2\n"), &out, finder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
	assert.Equal(t, []string{"1"}, finder.keys)
}

func TestPrintSales(t *testing.T) {
	finder := &fakeFinder{rows: map[string][]sales.Row{"1": {catsRow()}}}
	var out strings.Builder

	require.NoError(t, PrintSales(context.Background(), &out, finder, "1"))
	assert.Equal(t, sales.FormatRow(catsRow())+"\n", out.String())
}
