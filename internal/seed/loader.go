package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result counts inserted and skipped records per kind.
type Result struct {
	Inserted map[Kind]int
	Skipped  map[Kind]int
}

func newResult() Result {
	return Result{Inserted: make(map[Kind]int), Skipped: make(map[Kind]int)}
}

func (r Result) TotalInserted() int { return sum(r.Inserted) }
func (r Result) TotalSkipped() int  { return sum(r.Skipped) }

func sum(m map[Kind]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Loader inserts seed records that are not yet present in the store.
type Loader struct {
	db *gorm.DB
}

// NewLoader creates a loader writing through db.
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// Load inserts every record whose primary key is absent from its table and
// commits once. Existing rows are never updated. The first failing insert
// rolls back the whole load.
func (l *Loader) Load(ctx context.Context, records []Record) (Result, error) {
	result := newResult()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := existingKeys(tx)
		if err != nil {
			return err
		}
		return apply(existing, records, &result, func(rec Record) error {
			if err := tx.Omit(clause.Associations).Create(rec.Row).Error; err != nil {
				log.Printf("Seed load: failed to insert %s pk=%d: %v", rec.Kind, rec.PK, err)
				return fmt.Errorf("failed to insert %s pk=%d: %w", rec.Kind, rec.PK, err)
			}
			return nil
		})
	})
	if err != nil {
		return newResult(), err
	}
	return result, nil
}

// Plan reports what Load would insert and skip without writing anything.
func (l *Loader) Plan(ctx context.Context, records []Record) (Result, error) {
	result := newResult()
	existing, err := existingKeys(l.db.WithContext(ctx))
	if err != nil {
		return result, err
	}
	err = apply(existing, records, &result, func(Record) error { return nil })
	return result, err
}

// LoadFile decodes the seed file at path and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	records, err := ReadFile(path)
	if err != nil {
		return newResult(), err
	}
	return l.Load(ctx, records)
}

// ReadFile opens and decodes a seed file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// apply walks records parents-first and calls insert for each one whose key
// is not in existing. Inserted keys join existing, so a key repeated in the
// same file is inserted once.
func apply(existing map[Kind]map[uint]bool, records []Record, result *Result, insert func(Record) error) error {
	for _, rec := range ordered(records) {
		if existing[rec.Kind][rec.PK] {
			result.Skipped[rec.Kind]++
			continue
		}
		if err := insert(rec); err != nil {
			return err
		}
		existing[rec.Kind][rec.PK] = true
		result.Inserted[rec.Kind]++
	}
	return nil
}

// ordered returns records sorted by kind, keeping file order within a kind.
func ordered(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// existingKeys reads the primary keys already stored per kind. A missing
// table counts as empty.
func existingKeys(db *gorm.DB) (map[Kind]map[uint]bool, error) {
	existing := make(map[Kind]map[uint]bool, len(Kinds()))
	for _, kind := range Kinds() {
		if !db.Migrator().HasTable(kind.Model()) {
			existing[kind] = make(map[uint]bool)
			continue
		}
		var ids []uint
		if err := db.Model(kind.Model()).Pluck("id", &ids).Error; err != nil {
			return nil, fmt.Errorf("failed to read existing %s keys: %w", kind, err)
		}
		keys := make(map[uint]bool, len(ids))
		for _, id := range ids {
			keys[id] = true
		}
		existing[kind] = keys
	}
	return existing, nil
}
