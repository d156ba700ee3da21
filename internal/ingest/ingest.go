// Package ingest loads the personnel spreadsheet into a core.Store.
//
// Loading happens once at startup. Workbooks (.xlsx, .xlsm) are read with
// excelize's row iterator; .csv files are decoded as UTF-8 with any byte
// order mark removed. Both paths share the same normalization: trimmed
// headers, generated names for blank headers, serial-number columns dropped,
// trimmed values, blank rows skipped.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/staffdir/internal/core"
)

// Source names the file to load.
type Source struct {
	Path  string
	Sheet string // workbook sheet; empty selects the first sheet
}

func (s Source) String() string {
	if s.Sheet == "" {
		return s.Path
	}
	return s.Path + "#" + s.Sheet
}

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// Load reads src into a new Store.
func Load(ctx context.Context, src Source) (*core.Store, error) {
	var (
		tbl *table
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(src.Path)); ext {
	case ".xlsx", ".xlsm":
		tbl, err = readWorkbook(ctx, src)
	case ".csv":
		tbl, err = readCSV(ctx, src.Path)
	default:
		return nil, fmt.Errorf("unsupported data file %q", ext)
	}
	if err != nil {
		return nil, err
	}

	return tbl.store(src.String()), nil
}

// LoadOrEmpty is Load for the server: a failure is logged once and an empty
// store is returned so the API still starts.
func LoadOrEmpty(ctx context.Context, src Source) *core.Store {
	start := time.Now()
	store, err := Load(ctx, src)
	if err != nil {
		slog.Error("dataset load failed, serving empty dataset",
			"source", src.String(),
			"error", err,
			"user_message", core.FormatUserError(err),
		)
		return core.EmptyStore(src.String())
	}

	slog.Info("dataset loaded",
		"source", src.String(),
		"records", store.Len(),
		"columns", len(store.Columns()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return store
}
