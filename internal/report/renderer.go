package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/report/pdfstream"
)

// Producer is written to the document info dictionary.
const Producer = "staffdir"

// Stats describes a finished render.
type Stats struct {
	Pages int
	Rows  int
	Bytes int64
}

// Renderer turns a view into a PDF. It is safe for concurrent use; each
// Render call owns its own pipeline.
type Renderer struct {
	layout Layout
	deco   Decoration
}

// NewRenderer validates layout and returns a Renderer. An empty title drops
// the title band so more rows fit per page.
func NewRenderer(layout Layout, deco Decoration) (*Renderer, error) {
	if deco.Title == "" {
		layout = layout.WithoutTitle()
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if deco.Family.Regular == "" {
		deco.Family = pdfstream.Helvetica
	}
	return &Renderer{layout: layout, deco: deco}, nil
}

// Layout returns the effective page geometry.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// PageCount is the number of pages Render produces for n rows.
func (r *Renderer) PageCount(n int) int {
	return r.layout.PageCount(n)
}

// pageChunk is one page worth of formatted cell text.
type pageChunk struct {
	number int // 1-based
	first  int // absolute index of the first row
	cells  [][]string
}

// Render writes view to w as a PDF, one page at a time. A producer goroutine
// formats at most one page ahead of the page being written; a slow w
// therefore slows the producer instead of growing memory. Bytes reach w after
// every page. On error, w holds a truncated document.
func (r *Renderer) Render(ctx context.Context, w io.Writer, view core.View) (Stats, error) {
	total := r.layout.PageCount(len(view))
	pw := pdfstream.NewWriter(w)

	if err := pw.Begin(pdfstream.Options{
		Title:     r.deco.Title,
		Producer:  Producer,
		Family:    r.deco.Family,
		FillAlpha: r.deco.WatermarkOpacity,
	}); err != nil {
		return Stats{}, fmt.Errorf("render: %w", err)
	}

	chunks := make(chan pageChunk, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chunks)
		return r.produce(gctx, view, chunks)
	})

	g.Go(func() error {
		var content pdfstream.Content
		for chunk := range chunks {
			if err := gctx.Err(); err != nil {
				return err
			}
			content.Reset()
			r.drawPage(&content, chunk, total)
			if err := pw.AddPage(r.layout.PageWidth, r.layout.PageHeight, content.Bytes()); err != nil {
				return fmt.Errorf("page %d: %w", chunk.number, err)
			}
		}
		return nil
	})

	stats := Stats{Rows: len(view)}
	if err := g.Wait(); err != nil {
		stats.Pages = pw.Pages()
		stats.Bytes = pw.Written()
		return stats, fmt.Errorf("render: %w", err)
	}
	if err := pw.Close(); err != nil {
		return stats, fmt.Errorf("render: %w", err)
	}

	stats.Pages = pw.Pages()
	stats.Bytes = pw.Written()
	if stats.Pages != total {
		return stats, fmt.Errorf("render: wrote %d pages, expected %d", stats.Pages, total)
	}
	return stats, nil
}

// produce walks a cursor down the body, emitting a chunk whenever the next
// row would cross the bottom margin. The last chunk is always sent, so an
// empty view still yields one page.
func (r *Renderer) produce(ctx context.Context, view core.View, out chan<- pageChunk) error {
	l := r.layout
	chunk := pageChunk{number: 1}
	cursor := l.BodyTop()

	send := func() error {
		select {
		case out <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for i, rec := range view {
		if !l.Fits(cursor) {
			if err := send(); err != nil {
				return err
			}
			chunk = pageChunk{number: chunk.number + 1, first: i}
			cursor = l.BodyTop()
		}
		chunk.cells = append(chunk.cells, r.formatRow(i, rec))
		cursor += l.RowHeight
	}
	return send()
}

// formatRow renders the display text of absolute row i, truncated to fit
// each cell.
func (r *Renderer) formatRow(i int, rec core.Record) []string {
	font := r.deco.Family.Regular
	cells := make([]string, len(r.layout.Columns))
	for c, col := range r.layout.Columns {
		var v string
		if col.Name == core.IdentifierColumn {
			v = strconv.Itoa(i + 1)
		} else {
			v = rec.Get(col.Name)
		}
		cells[c] = pdfstream.Truncate(font, r.deco.CellSize, col.Width-2*r.deco.CellPadding, v)
	}
	return cells
}

// y converts a top-down position to PDF user space.
func (r *Renderer) y(top float64) float64 {
	return r.layout.PageHeight - top
}

// baseline returns the user-space baseline that vertically centers text of
// size in a band starting at top with the given height.
func (r *Renderer) baseline(top, height, size float64) float64 {
	const capHeight = 0.7
	return r.y(top + (height+size*capHeight)/2)
}

func (r *Renderer) drawPage(c *pdfstream.Content, chunk pageChunk, total int) {
	r.drawWatermark(c)
	r.drawTitle(c)
	r.drawHeader(c)
	r.drawRows(c, chunk)
	r.drawGrid(c, len(chunk.cells))
	r.drawFooter(c, chunk.number, total)
}

// drawWatermark draws the rotated watermark centered on the page, beneath
// everything else.
func (r *Renderer) drawWatermark(c *pdfstream.Content) {
	d := r.deco
	if d.Watermark == "" || d.WatermarkOpacity <= 0 {
		return
	}
	font := d.Family.Bold
	w := pdfstream.TextWidth(font, d.WatermarkSize, d.Watermark)
	rad := d.WatermarkAngle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	half := d.WatermarkSize * 0.35

	cx, cy := r.layout.PageWidth/2, r.layout.PageHeight/2
	x := cx - w/2*cos + half*sin
	y := cy - w/2*sin - half*cos

	c.Save()
	c.SetGState(pdfstream.WatermarkGState)
	c.SetFillColor(pdfstream.Black)
	c.RotatedText(pdfstream.BoldFontName, d.WatermarkSize, x, y, d.WatermarkAngle, d.Watermark)
	c.Restore()
}

func (r *Renderer) drawTitle(c *pdfstream.Content) {
	d, l := r.deco, r.layout
	if d.Title == "" || l.TitleHeight <= 0 {
		return
	}
	title := pdfstream.Truncate(d.Family.Bold, d.TitleSize, l.PrintableWidth(), d.Title)
	w := pdfstream.TextWidth(d.Family.Bold, d.TitleSize, title)
	x := l.MarginLeft + (l.PrintableWidth()-w)/2

	c.SetFillColor(pdfstream.Black)
	c.Text(pdfstream.BoldFontName, d.TitleSize, x, r.baseline(l.TitleTop(), l.TitleHeight, d.TitleSize), title)
}

func (r *Renderer) drawHeader(c *pdfstream.Content) {
	d, l := r.deco, r.layout

	c.SetFillColor(d.HeaderFill)
	c.FillRect(l.TableLeft(), r.y(l.HeaderTop()+l.HeaderHeight), l.TableWidth(), l.HeaderHeight)

	c.SetFillColor(d.HeaderText)
	for i, col := range l.Columns {
		rect := l.HeaderCellRect(i)
		avail := rect.W - 2*d.HeaderPadding
		size := fitSize(d.Family.Bold, d.HeaderSize, avail, col.Name)
		label := pdfstream.Truncate(d.Family.Bold, size, avail, col.Name)
		c.Text(pdfstream.BoldFontName, size, rect.X+d.HeaderPadding, r.baseline(rect.Top, rect.H, size), label)
	}
}

// minHeaderSize is the smallest size a header label shrinks to before it is
// truncated instead.
const minHeaderSize = 6

// fitSize shrinks size in half-point steps until s fits in width.
func fitSize(font string, size, width float64, s string) float64 {
	for size > minHeaderSize && pdfstream.TextWidth(font, size, s) > width {
		size -= 0.5
	}
	return size
}

func (r *Renderer) drawRows(c *pdfstream.Content, chunk pageChunk) {
	d, l := r.deco, r.layout

	c.SetFillColor(d.StripeFill)
	for slot := range chunk.cells {
		if !d.Shading.Shaded(chunk.first+slot, slot) {
			continue
		}
		rect := l.CellRect(slot, 0)
		c.FillRect(l.TableLeft(), r.y(rect.Top+rect.H), l.TableWidth(), rect.H)
	}

	c.SetFillColor(pdfstream.Black)
	for slot, cells := range chunk.cells {
		for col, text := range cells {
			if text == "" {
				continue
			}
			rect := l.CellRect(slot, col)
			c.Text(pdfstream.RegularFontName, d.CellSize, rect.X+d.CellPadding, r.baseline(rect.Top, rect.H, d.CellSize), text)
		}
	}
}

// drawGrid rules the header band and the rows drawn on this page.
func (r *Renderer) drawGrid(c *pdfstream.Content, rows int) {
	d, l := r.deco, r.layout
	left, right := l.TableLeft(), l.TableLeft()+l.TableWidth()
	top := l.HeaderTop()
	bottom := l.BodyTop() + float64(rows)*l.RowHeight

	c.SetStrokeColor(d.GridColor)
	c.SetLineWidth(d.GridWidth)

	c.StrokeRect(left, r.y(bottom), right-left, bottom-top)
	for i := 0; i < rows; i++ {
		yy := r.y(l.BodyTop() + float64(i)*l.RowHeight)
		c.Line(left, yy, right, yy)
	}
	for i := 1; i < len(l.Columns); i++ {
		x := l.ColumnX(i)
		c.Line(x, r.y(top), x, r.y(bottom))
	}
}

func (r *Renderer) drawFooter(c *pdfstream.Content, page, total int) {
	d, l := r.deco, r.layout
	font := d.Family.Regular

	c.SetFillColor(pdfstream.Black)

	label := fmt.Sprintf("Page %d of %d", page, total)
	w := pdfstream.TextWidth(font, d.FooterSize, label)
	c.Text(pdfstream.RegularFontName, d.FooterSize, (l.PageWidth-w)/2, l.MarginBottom/2+4, label)

	if d.Attribution != "" {
		w := pdfstream.TextWidth(font, d.FooterSize, d.Attribution)
		c.Text(pdfstream.RegularFontName, d.FooterSize, (l.PageWidth-w)/2, l.MarginBottom/2-8, d.Attribution)
	}
}
