// Package report renders a filtered view as a paginated PDF table.
//
// Layout holds the pure page geometry: page size, margins, column widths and
// band heights. Every vertical position in Layout is measured from the top of
// the page; the renderer converts to PDF user space when drawing.
package report

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/staffdir/internal/core"
)

// A4 landscape, in points.
const (
	PageWidth  = 841.89
	PageHeight = 595.28
)

// Column is one table column: the record key it shows and its width in points.
type Column struct {
	Name  string
	Width float64
}

// DefaultColumns is the export table: the row identifier followed by the
// personnel columns.
var DefaultColumns = []Column{
	{core.IdentifierColumn, 35},
	{core.ColPFNo, 70},
	{core.ColName, 110},
	{core.ColFatherName, 110},
	{core.ColBillUnit, 60},
	{core.ColDesig, 80},
	{core.ColMobileNo, 90},
	{core.ColStation, 70},
	{core.ColBooth, 70},
}

// Layout is the fixed geometry of every page.
type Layout struct {
	PageWidth, PageHeight float64

	MarginLeft, MarginTop, MarginRight, MarginBottom float64

	Columns []Column

	// TitleHeight is zero when the document has no title band.
	TitleHeight  float64
	HeaderHeight float64
	RowHeight    float64
}

// DefaultLayout returns the landscape A4 table layout.
func DefaultLayout() Layout {
	cols := make([]Column, len(DefaultColumns))
	copy(cols, DefaultColumns)
	return Layout{
		PageWidth:    PageWidth,
		PageHeight:   PageHeight,
		MarginLeft:   40,
		MarginTop:    60,
		MarginRight:  40,
		MarginBottom: 50,
		Columns:      cols,
		TitleHeight:  24,
		HeaderHeight: 20,
		RowHeight:    18,
	}
}

// Rect is an axis-aligned box. Top is measured from the top of the page.
type Rect struct {
	X, Top, W, H float64
}

// PrintableWidth is the page width inside the side margins.
func (l Layout) PrintableWidth() float64 {
	return l.PageWidth - l.MarginLeft - l.MarginRight
}

// TableWidth is the sum of the column widths.
func (l Layout) TableWidth() float64 {
	var w float64
	for _, c := range l.Columns {
		w += c.Width
	}
	return w
}

// TableLeft is the x of the table's left edge; the table is centered within
// the printable width.
func (l Layout) TableLeft() float64 {
	return l.MarginLeft + (l.PrintableWidth()-l.TableWidth())/2
}

// TitleTop is where the title band starts.
func (l Layout) TitleTop() float64 {
	return l.MarginTop
}

// HeaderTop is where the column header band starts.
func (l Layout) HeaderTop() float64 {
	return l.MarginTop + l.TitleHeight
}

// BodyTop is where the first data row starts.
func (l Layout) BodyTop() float64 {
	return l.HeaderTop() + l.HeaderHeight
}

// BodyBottom is the lowest point a data row may reach.
func (l Layout) BodyBottom() float64 {
	return l.PageHeight - l.MarginBottom
}

// Fits reports whether a row starting at cursor ends above BodyBottom.
func (l Layout) Fits(cursor float64) bool {
	return cursor+l.RowHeight <= l.BodyBottom()
}

// RowsPerPage is how many rows the cursor places before breaking. It walks
// the cursor the same way the renderer does so the two always agree.
func (l Layout) RowsPerPage() int {
	if l.RowHeight <= 0 {
		return 0
	}
	n := 0
	for y := l.BodyTop(); l.Fits(y); y += l.RowHeight {
		n++
	}
	return n
}

// PageCount is the number of pages for n rows: max(1, ceil(n/RowsPerPage)).
func (l Layout) PageCount(n int) int {
	r := l.RowsPerPage()
	if n <= 0 || r <= 0 {
		return 1
	}
	return (n + r - 1) / r
}

// ColumnX returns the left edge of column col.
func (l Layout) ColumnX(col int) float64 {
	x := l.TableLeft()
	for i := 0; i < col && i < len(l.Columns); i++ {
		x += l.Columns[i].Width
	}
	return x
}

// HeaderCellRect is the header band cell of column col.
func (l Layout) HeaderCellRect(col int) Rect {
	return Rect{X: l.ColumnX(col), Top: l.HeaderTop(), W: l.Columns[col].Width, H: l.HeaderHeight}
}

// CellRect is the cell of column col in row slot of a page.
func (l Layout) CellRect(slot, col int) Rect {
	return Rect{
		X:   l.ColumnX(col),
		Top: l.BodyTop() + float64(slot)*l.RowHeight,
		W:   l.Columns[col].Width,
		H:   l.RowHeight,
	}
}

// WithoutTitle returns a copy of l with no title band.
func (l Layout) WithoutTitle() Layout {
	l.TitleHeight = 0
	return l
}

// Validate checks that the table fits on the page and at least one row fits.
func (l Layout) Validate() error {
	if len(l.Columns) == 0 {
		return errors.New("layout: no columns")
	}
	for _, c := range l.Columns {
		if c.Width <= 0 {
			return fmt.Errorf("layout: column %q has non-positive width", c.Name)
		}
	}
	if l.TableWidth() > l.PrintableWidth() {
		return fmt.Errorf("layout: table width %.2f exceeds printable width %.2f", l.TableWidth(), l.PrintableWidth())
	}
	if l.HeaderHeight <= 0 || l.RowHeight <= 0 || l.TitleHeight < 0 {
		return errors.New("layout: band heights must be positive")
	}
	if l.RowsPerPage() < 1 {
		return errors.New("layout: no room for data rows")
	}
	return nil
}

// ShadingPolicy decides which data rows get the stripe fill.
type ShadingPolicy string

const (
	// ShadeAbsolute shades odd rows of the whole view, continuing across pages.
	ShadeAbsolute ShadingPolicy = "absolute"
	// ShadePage shades odd rows counted from the top of each page.
	ShadePage ShadingPolicy = "page"
)

// Shaded reports whether absolute row i, drawn in the given page slot, is striped.
func (p ShadingPolicy) Shaded(i, slot int) bool {
	if p == ShadePage {
		return slot%2 == 1
	}
	return i%2 == 1
}
