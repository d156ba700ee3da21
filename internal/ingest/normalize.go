package ingest

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/staffdir/internal/core"
)

// serialHeaders are normalized header names treated as row counters in the
// source sheet. They carry no data and would clash with the generated SR_No.
var serialHeaders = map[string]bool{
	"srno":         true,
	"slno":         true,
	"sno":          true,
	"serialno":     true,
	"serialnumber": true,
}

// normalizeHeader lowercases h and keeps only ASCII letters and digits.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsSerialColumn reports whether header names a serial-number column.
func IsSerialColumn(header string) bool {
	return serialHeaders[normalizeHeader(header)]
}

// table accumulates rows against a fixed header.
type table struct {
	columns []string // kept column names, in source order
	index   []int    // source cell index for each kept column
	records []core.Record
}

// newTable builds the column plan from the raw header row.
func newTable(header []string) *table {
	t := &table{}
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if IsSerialColumn(h) {
			continue
		}
		if seen[h] {
			base := h
			for n := 1; seen[h]; n++ {
				h = fmt.Sprintf("%s_%d", base, n)
			}
		}
		seen[h] = true
		t.columns = append(t.columns, h)
		t.index = append(t.index, i)
	}
	return t
}

// add appends one data row. Missing trailing cells read as "". Rows whose kept
// cells are all blank are skipped.
func (t *table) add(cells []string) {
	rec := make(core.Record, len(t.columns))
	blank := true
	for j, col := range t.columns {
		v := ""
		if src := t.index[j]; src < len(cells) {
			v = strings.TrimSpace(cells[src])
		}
		if v != "" {
			blank = false
		}
		rec[col] = v
	}
	if blank {
		return
	}
	t.records = append(t.records, rec)
}

func (t *table) store(source string) *core.Store {
	return core.NewStore(source, t.columns, t.records)
}

// isBlankRow reports whether every cell is whitespace.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
