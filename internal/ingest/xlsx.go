package ingest

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook streams the chosen sheet through excelize's row iterator. The
// first non-blank row is the header. Cell values are the formatted text the
// spreadsheet displays.
func readWorkbook(ctx context.Context, src Source) (*table, error) {
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", src.Path, err)
	}
	defer f.Close()

	sheet := src.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("read workbook %s: no sheets", src.Path)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: sheet %q: %w", src.Path, sheet, err)
	}
	defer rows.Close()

	var tbl *table
	for n := 0; rows.Next(); n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read workbook %s: row %d: %w", src.Path, n+1, err)
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
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", src.Path, err)
	}

	if tbl == nil {
		return &table{}, nil
	}
	return tbl, nil
}
