// Command generate_seed writes a sample seed file with publishers, shops,
// books, stock and sales.
// Usage: go run cmd/generate_seed/main.go [-out data.json] [-sales 2] [-db catalog.db]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/database"
	"github.com/mrlokans/booksales/internal/seed"
)

const defaultSeedPath = "./data.json"

type record struct {
	Model  string         `json:"model"`
	PK     uint           `json:"pk"`
	Fields map[string]any `json:"fields"`
}

type sampleBook struct {
	Title     string
	Publisher uint
	Price     string
}

var (
	publishers = []string{"O'Reilly", "Pearson", "Microsoft Press", "No starch press"}
	shops      = []string{"Labirint", "OZON", "Amazon", "Books.ru"}
	books      = []sampleBook{
		{"Programming Python, 4th Edition", 1, "50.05"},
		{"Learning Python, 4th Edition", 1, "49.99"},
		{"Natural Language Processing with Python", 1, "38.90"},
		{"Hacking: The Art of Exploitation", 4, "26.70"},
		{"Modern Operating Systems 4th Edition", 2, "65.15"},
		{"Code Complete: Second Edition", 3, "33.00"},
	}
)

func main() {
	outPath := flag.String("out", defaultSeedPath, "path of the seed file to write")
	salesPerStock := flag.Int("sales", 2, "number of sales generated for every stock row")
	dbPath := flag.String("db", "", "if set, also load the generated file into this SQLite database")
	flag.Parse()

	records := generate(*salesPerStock)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode seed file: %v", err)
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write seed file: %v", err)
	}
	log.Printf("Wrote %d records to %s", len(records), *outPath)

	if *dbPath == "" {
		return
	}

	db, err := database.NewDatabase(config.Database{Driver: config.DriverSQLite, Path: *dbPath, LogLevel: "warn"})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	result, err := seed.NewLoader(db.DB).LoadFile(context.Background(), *outPath)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded into %s: %d inserted, %d skipped", *dbPath, result.TotalInserted(), result.TotalSkipped())
}

// generate stocks every book in two shops and sells it salesPerStock times.
func generate(salesPerStock int) []record {
	var records []record

	for i, name := range publishers {
		records = append(records, record{Model: "publisher", PK: uint(i + 1), Fields: map[string]any{"name": name}})
	}

	for i, b := range books {
		records = append(records, record{Model: "book", PK: uint(i + 1), Fields: map[string]any{
			"title":        b.Title,
			"id_publisher": b.Publisher,
		}})
	}

	for i, name := range shops {
		records = append(records, record{Model: "shop", PK: uint(i + 1), Fields: map[string]any{"name": name}})
	}

	base := time.Date(2018, 10, 25, 9, 45, 24, 552000000, time.UTC)
	var stockPK, salePK uint
	for i, b := range books {
		price := decimal.RequireFromString(b.Price)
		for j := 0; j < 2; j++ {
			stockPK++
			shop := uint((i+j)%len(shops) + 1)
			records = append(records, record{Model: "stock", PK: stockPK, Fields: map[string]any{
				"id_book": uint(i + 1),
				"id_shop": shop,
				"count":   10 + i + j,
			}})

			for k := 0; k < salesPerStock; k++ {
				salePK++
				sold := base.Add(time.Duration(salePK) * 26 * time.Hour)
				records = append(records, record{Model: "sale", PK: salePK, Fields: map[string]any{
					"price":     price.StringFixed(2),
					"date_sale": sold.Format("2006-01-02T15:04:05.000Z"),
					"id_stock":  stockPK,
					"count":     k + 1,
				}})
			}
		}
	}

	return records
}
