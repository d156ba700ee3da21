package core

import (
	"time"
)

// Known dataset columns, in the order the export renders them.
const (
	ColPFNo       = "PF_NO"
	ColName       = "NAME"
	ColFatherName = "FATHER_NAME"
	ColBillUnit   = "BILL_UNIT"
	ColDesig      = "DESIG"
	ColMobileNo   = "MOBILE_NO"
	ColStation    = "STATION"
	ColBooth      = "BOOTH"
)

// IdentifierColumn is the name of the synthetic, presentation-time row number.
// It is never stored on a Record.
const IdentifierColumn = "SR_No"

// KnownColumns lists the personnel columns the export lays out.
var KnownColumns = []string{
	ColPFNo, ColName, ColFatherName, ColBillUnit, ColDesig, ColMobileNo, ColStation, ColBooth,
}

// Record is one dataset row: column name to the cell's displayed text.
type Record map[string]string

// Get returns the value for col, or "" when the column is absent.
func (r Record) Get(col string) string {
	return r[col]
}

// Store is the immutable in-memory dataset. It is built once by ingestion
// before the API accepts traffic and never mutated afterwards, so it can be
// shared across goroutines without locking.
type Store struct {
	records  []Record
	columns  []string
	source   string
	loadedAt time.Time
}

// NewStore wraps records loaded from source. The store takes ownership of
// both slices; callers must not modify them afterwards.
func NewStore(source string, columns []string, records []Record) *Store {
	if records == nil {
		records = []Record{}
	}
	return &Store{
		records:  records,
		columns:  columns,
		source:   source,
		loadedAt: time.Now(),
	}
}

// EmptyStore returns a store with no rows, used when ingestion fails.
func EmptyStore(source string) *Store {
	return NewStore(source, nil, nil)
}

// Records returns the rows in source order. The slice is shared; treat it as read-only.
func (s *Store) Records() []Record {
	return s.records
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.records)
}

// Columns returns the column names in source order (serial columns removed).
func (s *Store) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Source returns where the rows were loaded from.
func (s *Store) Source() string {
	return s.source
}

// LoadedAt returns when the store was built.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}
