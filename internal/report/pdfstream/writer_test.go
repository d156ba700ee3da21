package pdfstream

import (
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func buildDocument(t *testing.T, pages int, opts Options) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Begin(opts); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	for i := 0; i < pages; i++ {
		var c Content
		c.SetFillColor(RGB(0x0f, 0x17, 0x2a))
		c.FillRect(40, 500, 200, 20)
		c.SetFillColor(White)
		c.Text(BoldFontName, 10, 44, 506, "Header (1)")
		c.SetFillColor(Black)
		c.Text(RegularFontName, 9, 44, 480, "Naïve — café \\ ✓")
		c.Save()
		c.SetGState(WatermarkGState)
		c.RotatedText(BoldFontName, 60, 200, 150, 45, "WATERMARK")
		c.Restore()
		c.SetStrokeColor(RGB(0xbf, 0xbf, 0xbf))
		c.SetLineWidth(0.7)
		c.Line(40, 470, 240, 470)
		c.StrokeRect(40, 470, 200, 50)
		if err := w.AddPage(841.89, 595.28, c.Bytes()); err != nil {
			t.Fatalf("AddPage(%d) error = %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestWriter_ValidDocument(t *testing.T) {
	for _, pages := range []int{1, 3, 40} {
		doc := buildDocument(t, pages, Options{
			Title:     "Staff — Filtered List",
			Producer:  "staffdir",
			Family:    Helvetica,
			FillAlpha: 0.22,
		})

		conf := model.NewDefaultConfiguration()
		if err := api.Validate(bytes.NewReader(doc), conf); err != nil {
			t.Fatalf("%d pages: Validate() error = %v", pages, err)
		}
		got, err := api.PageCount(bytes.NewReader(doc), conf)
		if err != nil {
			t.Fatalf("%d pages: PageCount() error = %v", pages, err)
		}
		if got != pages {
			t.Errorf("PageCount() = %d, want %d", got, pages)
		}
	}
}

func TestWriter_CourierFamily(t *testing.T) {
	doc := buildDocument(t, 1, Options{Producer: "staffdir", Family: Courier})
	if !bytes.Contains(doc, []byte("/BaseFont /Courier-Bold")) {
		t.Error("document does not reference Courier-Bold")
	}
	if err := api.Validate(bytes.NewReader(doc), model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestWriter_XrefLayout(t *testing.T) {
	doc := buildDocument(t, 2, Options{Producer: "staffdir"})

	s := string(doc)
	if !strings.HasPrefix(s, "%PDF-1.4\n") {
		t.Errorf("missing header: %q", s[:12])
	}
	if !strings.HasSuffix(s, "%%EOF\n") {
		t.Errorf("missing %%EOF trailer")
	}

	xref := strings.Index(s, "\nxref\n")
	if xref < 0 {
		t.Fatal("no xref section")
	}
	xref++
	// 7 shared objects + 2 per page + the free entry.
	if !strings.HasPrefix(s[xref:], "xref\n0 12\n") {
		t.Errorf("xref header = %q, want 12 entries", s[xref:xref+10])
	}
	entries := s[xref+len("xref\n0 12\n"):]
	for i := 0; i < 12; i++ {
		entry := entries[i*20 : (i+1)*20]
		if !strings.HasSuffix(entry, "\r\n") {
			t.Errorf("entry %d = %q, not 20 bytes", i, entry)
		}
	}

	// Every in-use entry must point at its object header.
	for num := 1; num < 12; num++ {
		off, err := strconv.Atoi(entries[num*20 : num*20+10])
		if err != nil {
			t.Fatalf("entry %d: %v", num, err)
		}
		want := strconv.Itoa(num) + " 0 obj"
		if !strings.HasPrefix(s[off:], want) {
			t.Errorf("object %d offset %d points at %q", num, off, s[off:off+10])
		}
	}
}

func TestWriter_Misuse(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.AddPage(100, 100, nil); !errors.Is(err, ErrNotStarted) {
		t.Errorf("AddPage before Begin error = %v, want ErrNotStarted", err)
	}
	if err := w.Begin(Options{}); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := w.Begin(Options{}); err == nil {
		t.Error("second Begin() expected error")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() with no pages expected error")
	}
	if err := w.AddPage(100, 100, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("AddPage after Close error = %v, want ErrClosed", err)
	}
}

type failingWriter struct {
	limit int
	n     int
}

var errDiskFull = errors.New("disk full")

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n+len(p) > f.limit {
		return 0, errDiskFull
	}
	f.n += len(p)
	return len(p), nil
}

type countingFlusher struct {
	bytes.Buffer
	flushes int
}

func (c *countingFlusher) Flush() error {
	c.flushes++
	return nil
}

func TestWriter_FlushesEachPage(t *testing.T) {
	var dst countingFlusher
	w := NewWriter(&dst)
	if err := w.Begin(Options{Producer: "staffdir"}); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	for i := 1; i <= 3; i++ {
		var c Content
		c.Text(RegularFontName, 9, 10, 10, "row")
		if err := w.AddPage(200, 200, c.Bytes()); err != nil {
			t.Fatalf("AddPage() error = %v", err)
		}
		if dst.flushes != i {
			t.Errorf("after page %d flushes = %d", i, dst.flushes)
		}
		if int64(dst.Len()) != w.Written() {
			t.Errorf("after page %d destination has %d bytes, writer reports %d", i, dst.Len(), w.Written())
		}
	}
	if w.Pages() != 3 {
		t.Errorf("Pages() = %d, want 3", w.Pages())
	}
}

func TestWriter_WriteErrorIsSticky(t *testing.T) {
	w := NewWriter(&failingWriter{limit: 10})
	if err := w.Begin(Options{Producer: "staffdir"}); err != nil {
		t.Fatalf("Begin() error = %v (prologue is buffered)", err)
	}
	if err := w.AddPage(100, 100, []byte("0 0 m")); !errors.Is(err, errDiskFull) {
		t.Fatalf("AddPage() error = %v, want disk full", err)
	}
	if err := w.AddPage(100, 100, []byte("0 0 m")); !errors.Is(err, errDiskFull) {
		t.Errorf("second AddPage() error = %v, want sticky disk full", err)
	}
}
