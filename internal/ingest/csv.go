package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV reads a comma-separated export of the sheet. A UTF-8 BOM is removed
// and invalid byte sequences become U+FFFD.
func readCSV(ctx context.Context, path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	defer f.Close()

	decoded := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var tbl *table
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", path, err)
		}
		if tbl == nil {
			if isBlankRow(cells) {
				continue
			}
			tbl = newTable(cells)
			continue
		}
		tbl.add(cells)
	}

	if tbl == nil {
		return &table{}, nil
	}
	return tbl, nil
}
