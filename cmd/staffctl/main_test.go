package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staff.csv")
	data := "SR_No,PF_NO,NAME,STATION\n" +
		"1,111,Asha,KOTA\n" +
		"2,222,Vikram,AKLA\n" +
		"3,333,Meena,Kota Jn\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuery(t *testing.T) {
	data := writeCSV(t)

	out, err := run(t, "--data", data, "query", "--station", "kota", "--limit", "1")
	if err != nil {
		t.Fatalf("query error = %v\n%s", err, out)
	}

	var page struct {
		Total int              `json:"total"`
		Limit int              `json:"limit"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if page.Total != 2 || page.Limit != 1 || len(page.Data) != 1 {
		t.Fatalf("page = %+v, want total 2, limit 1, one row", page)
	}
	if page.Data[0]["NAME"] != "Asha" {
		t.Errorf("NAME = %v, want Asha", page.Data[0]["NAME"])
	}
}

func TestQuery_MissingFile(t *testing.T) {
	_, err := run(t, "--data", filepath.Join(t.TempDir(), "nope.csv"), "query")
	if err == nil {
		t.Fatal("query on missing file error = nil, want error")
	}
	if !strings.Contains(err.Error(), "FILE001") {
		t.Errorf("error = %v, want FILE001", err)
	}
}

func TestExport(t *testing.T) {
	data := writeCSV(t)
	output := filepath.Join(t.TempDir(), "out.pdf")

	out, err := run(t, "--data", data, "export", "-o", output, "--validate", "--pf-no", "2")
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 rows, 1 pages") {
		t.Errorf("output = %q, want summary with 1 row and 1 page", out)
	}

	pages, err := api.PageCountFile(output)
	if err != nil {
		t.Fatalf("PageCountFile() error = %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestExport_RequiresOutput(t *testing.T) {
	if _, err := run(t, "--data", writeCSV(t), "export"); err == nil {
		t.Error("export without -o error = nil, want error")
	}
}

func TestInspect(t *testing.T) {
	out, err := run(t, "--data", writeCSV(t), "inspect")
	if err != nil {
		t.Fatalf("inspect error = %v\n%s", err, out)
	}
	for _, want := range []string{"records:       3", "columns:       PF_NO, NAME, STATION", "export pages:  1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFlagName(t *testing.T) {
	tests := map[string]string{
		"PF_NO":     "pf-no",
		"BILL_UNIT": "bill-unit",
		"STATION":   "station",
	}
	for col, want := range tests {
		if got := flagName(col); got != want {
			t.Errorf("flagName(%q) = %q, want %q", col, got, want)
		}
	}
}
