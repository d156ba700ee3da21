// Package pdfstream is a minimal, append-only PDF writer that emits each page
// as soon as it is added.
//
// The document prologue (catalog, fonts, graphics state, shared resources,
// info) is written by Begin. AddPage writes one compressed content stream and
// its page object and flushes them to the destination, so memory use does not
// grow with the page count. Close writes the page tree, the cross-reference
// table and the trailer. Only the standard Type1 fonts are used, with
// WinAnsiEncoding; nothing is embedded.
package pdfstream

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// Fixed object numbers. Pages start at firstPageObj, two objects each
// (content stream, page dictionary).
const (
	catalogObj   = 1
	pagesObj     = 2
	regularObj   = 3
	boldObj      = 4
	gstateObj    = 5
	resourcesObj = 6
	infoObj      = 7
	firstPageObj = 8
)

// Resource names used by content streams.
const (
	RegularFontName = "F1"
	BoldFontName    = "F2"
	WatermarkGState = "GS1"
)

var (
	// ErrNotStarted is returned when pages are added before Begin.
	ErrNotStarted = errors.New("pdfstream: Begin not called")
	// ErrClosed is returned when the writer is used after Close.
	ErrClosed = errors.New("pdfstream: writer closed")
)

// Options describes document-wide settings fixed at Begin.
type Options struct {
	Title    string
	Producer string
	Family   Family

	// FillAlpha is the fill/stroke opacity of the WatermarkGState graphics
	// state, clamped to [0,1].
	FillAlpha float64
}

// Writer streams a PDF document to an io.Writer.
type Writer struct {
	dst     io.Writer
	bw      *bufio.Writer
	n       int64   // bytes handed to bw
	offsets []int64 // byte offset per object number; index 0 unused
	kids    []int   // page object numbers in order
	started bool
	closed  bool
	err     error // first write error; sticky
}

// NewWriter returns a Writer that writes to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		dst:     dst,
		bw:      bufio.NewWriterSize(dst, 32*1024),
		offsets: make([]int64, firstPageObj),
	}
}

// Pages returns the number of pages added so far.
func (w *Writer) Pages() int {
	return len(w.kids)
}

// Written returns the number of bytes produced so far, including buffered ones.
func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.bw.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = err
	}
}

func (w *Writer) printf(format string, args ...any) {
	w.write([]byte(fmt.Sprintf(format, args...)))
}

// beginObj records the offset of object num and writes its header.
func (w *Writer) beginObj(num int) {
	for len(w.offsets) <= num {
		w.offsets = append(w.offsets, 0)
	}
	w.offsets[num] = w.n
	w.printf("%d 0 obj\n", num)
}

func (w *Writer) endObj() {
	w.write([]byte("endobj\n"))
}

func (w *Writer) dictObj(num int, dict string) {
	w.beginObj(num)
	w.write([]byte(dict))
	w.write([]byte("\n"))
	w.endObj()
}

// Begin writes the header and the shared objects.
func (w *Writer) Begin(opts Options) error {
	if w.closed {
		return ErrClosed
	}
	if w.started {
		return errors.New("pdfstream: Begin called twice")
	}
	w.started = true

	fam := opts.Family
	if fam.Regular == "" {
		fam = Helvetica
	}
	alpha := opts.FillAlpha
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}

	// Binary comment marks the file as binary for transfer tools.
	w.write([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"))

	w.dictObj(catalogObj, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj))
	w.dictObj(regularObj, fontDict(fam.Regular))
	w.dictObj(boldObj, fontDict(fam.Bold))
	w.dictObj(gstateObj, fmt.Sprintf("<< /Type /ExtGState /ca %s /CA %s >>", Num(alpha), Num(alpha)))
	w.dictObj(resourcesObj, fmt.Sprintf(
		"<< /ProcSet [/PDF /Text] /Font << /%s %d 0 R /%s %d 0 R >> /ExtGState << /%s %d 0 R >> >>",
		RegularFontName, regularObj, BoldFontName, boldObj, WatermarkGState, gstateObj))

	info := "<< /Producer " + textString(opts.Producer)
	if opts.Title != "" {
		info += " /Title " + textString(opts.Title)
	}
	info += " >>"
	w.dictObj(infoObj, info)

	return w.err
}

func fontDict(base string) string {
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>", base)
}

// flusher matches destinations that can push buffered bytes further, such as
// http.ResponseController wrappers or bufio writers.
type flusher interface {
	Flush() error
}

type plainFlusher interface {
	Flush()
}

// AddPage writes one page of the given size (points) whose content stream is
// content, then flushes everything written so far to the destination.
func (w *Writer) AddPage(width, height float64, content []byte) error {
	switch {
	case w.closed:
		return ErrClosed
	case !w.started:
		return ErrNotStarted
	case w.err != nil:
		return w.err
	}

	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	if _, err := zw.Write(content); err != nil {
		return fmt.Errorf("compress page: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress page: %w", err)
	}

	contentObj := firstPageObj + 2*len(w.kids)
	pageObj := contentObj + 1

	w.beginObj(contentObj)
	w.printf("<< /Length %d /Filter /FlateDecode >>\nstream\n", z.Len())
	w.write(z.Bytes())
	w.write([]byte("\nendstream\n"))
	w.endObj()

	w.dictObj(pageObj, fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /Resources %d 0 R /Contents %d 0 R >>",
		pagesObj, Num(width), Num(height), resourcesObj, contentObj))
	w.kids = append(w.kids, pageObj)

	return w.flush()
}

func (w *Writer) flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
		return err
	}
	switch f := w.dst.(type) {
	case flusher:
		if err := f.Flush(); err != nil {
			w.err = err
			return err
		}
	case plainFlusher:
		f.Flush()
	}
	return nil
}

// Close writes the page tree, the cross-reference table and the trailer.
// It does not close the destination.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	if !w.started {
		return ErrNotStarted
	}
	w.closed = true
	if len(w.kids) == 0 {
		return errors.New("pdfstream: document has no pages")
	}

	var kids strings.Builder
	for i, k := range w.kids {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", k)
	}
	w.dictObj(pagesObj, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(w.kids)))

	xref := w.n
	size := len(w.offsets)
	w.printf("xref\n0 %d\n", size)
	// Each entry is exactly 20 bytes including the two-byte EOL.
	w.write([]byte("0000000000 65535 f\r\n"))
	for num := 1; num < size; num++ {
		w.printf("%010d 00000 n\r\n", w.offsets[num])
	}
	w.printf("trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		size, catalogObj, infoObj, xref)

	return w.flush()
}

// textString encodes s as a PDF text string: a literal for printable ASCII,
// otherwise UTF-16BE hex with a byte order mark.
func textString(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			ascii = false
			break
		}
	}
	if ascii {
		return "(" + escape(s) + ")"
	}

	var b strings.Builder
	b.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	b.WriteString(">")
	return b.String()
}
