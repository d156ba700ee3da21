package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/staffdir/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.DefaultLimit = 10
	cfg.Export.MaxConcurrent = 1
	cfg.Export.MaxWaitTime = 50 * time.Millisecond
	return cfg
}

func TestNewServiceRequiresStore(t *testing.T) {
	if _, err := NewService(nil, testConfig()); err == nil {
		t.Error("NewService(nil) error = nil, want error")
	}
}

func TestServiceQuery(t *testing.T) {
	store := NewStore("test", []string{ColPFNo, ColStation}, []Record{
		{ColPFNo: "123", ColStation: "AKLA"},
		{ColPFNo: "456", ColStation: "KOTA"},
	})
	svc, err := NewService(store, testConfig())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	page := svc.Query(Criteria{ColStation: "akla"}, 1, svc.DefaultLimit())
	if page.Total != 1 || len(page.Rows) != 1 {
		t.Fatalf("Query() total=%d rows=%d, want 1/1", page.Total, len(page.Rows))
	}
	if page.Rows[0].Record[ColPFNo] != "123" || page.Rows[0].ID != 1 {
		t.Errorf("Query() row = %+v, want PF 123 with id 1", page.Rows[0])
	}

	stats := svc.Stats()
	if stats.Records != 2 || len(stats.Columns) != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestServiceBeginExport(t *testing.T) {
	svc, err := NewService(EmptyStore("empty"), testConfig())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	ctx := context.Background()

	exp, err := svc.BeginExport(ctx)
	if err != nil {
		t.Fatalf("BeginExport() error = %v", err)
	}
	if exp.ID == "" {
		t.Error("export ID is empty")
	}

	if _, err := svc.BeginExport(ctx); !errors.Is(err, ErrTooManyExports) {
		t.Errorf("second BeginExport() error = %v, want ErrTooManyExports", err)
	}

	exp.Done()
	exp.Done()
	if got := svc.ExportStatus().Active; got != 0 {
		t.Errorf("Active after Done = %d, want 0", got)
	}

	next, err := svc.BeginExport(ctx)
	if err != nil {
		t.Fatalf("BeginExport() after release error = %v", err)
	}
	if next.ID == exp.ID {
		t.Error("export IDs repeat")
	}
	next.Done()
}
