package pdfstream

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Num formats f for a content stream: at most three decimals, no exponent,
// no trailing zeros.
func Num(f float64) string {
	s := strconv.FormatFloat(math.Round(f*1000)/1000, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Content builds one page content stream. Coordinates are PDF user space:
// points, origin at the bottom-left corner.
type Content struct {
	buf bytes.Buffer
}

// Bytes returns the stream built so far.
func (c *Content) Bytes() []byte {
	return c.buf.Bytes()
}

// Reset clears the stream for reuse.
func (c *Content) Reset() {
	c.buf.Reset()
}

func (c *Content) op(format string, args ...any) {
	fmt.Fprintf(&c.buf, format, args...)
	c.buf.WriteByte('\n')
}

// Save pushes the graphics state (q).
func (c *Content) Save() { c.op("q") }

// Restore pops the graphics state (Q).
func (c *Content) Restore() { c.op("Q") }

// SetGState applies a named ExtGState resource.
func (c *Content) SetGState(name string) {
	c.op("/%s gs", name)
}

func (c *Content) SetFillColor(col Color) {
	c.op("%s %s %s rg", Num(col.R), Num(col.G), Num(col.B))
}

func (c *Content) SetStrokeColor(col Color) {
	c.op("%s %s %s RG", Num(col.R), Num(col.G), Num(col.B))
}

func (c *Content) SetLineWidth(w float64) {
	c.op("%s w", Num(w))
}

// FillRect fills the rectangle with lower-left corner (x, y).
func (c *Content) FillRect(x, y, w, h float64) {
	c.op("%s %s %s %s re f", Num(x), Num(y), Num(w), Num(h))
}

// StrokeRect outlines the rectangle with lower-left corner (x, y).
func (c *Content) StrokeRect(x, y, w, h float64) {
	c.op("%s %s %s %s re S", Num(x), Num(y), Num(w), Num(h))
}

// Line strokes a straight segment.
func (c *Content) Line(x1, y1, x2, y2 float64) {
	c.op("%s %s m %s %s l S", Num(x1), Num(y1), Num(x2), Num(y2))
}

// Text draws s with its baseline starting at (x, y).
func (c *Content) Text(font string, size, x, y float64, s string) {
	c.op("BT /%s %s Tf %s %s Td (%s) Tj ET", font, Num(size), Num(x), Num(y), escape(EncodeWinAnsi(s)))
}

// RotatedText draws s starting at (x, y), rotated counterclockwise by deg degrees.
func (c *Content) RotatedText(font string, size, x, y, deg float64, s string) {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	c.op("BT /%s %s Tf %s %s %s %s %s %s Tm (%s) Tj ET",
		font, Num(size), Num(cos), Num(sin), Num(-sin), Num(cos), Num(x), Num(y), escape(EncodeWinAnsi(s)))
}

// EncodeWinAnsi maps s to WinAnsiEncoding bytes. Runes outside the code page
// become '?' and control characters become spaces.
func EncodeWinAnsi(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x20 {
			b = append(b, ' ')
			continue
		}
		if r < 0x7f {
			b = append(b, byte(r))
			continue
		}
		enc, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || enc < 0x80 {
			enc = '?'
		}
		b = append(b, enc)
	}
	return string(b)
}

// escape quotes the PDF literal string delimiters in s.
func escape(s string) string {
	if !strings.ContainsAny(s, `\()`+"\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
