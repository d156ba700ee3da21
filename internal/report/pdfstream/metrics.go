package pdfstream

import "strings"

// Family pairs the regular and bold standard fonts used by a document.
type Family struct {
	Name    string
	Regular string
	Bold    string
}

var (
	Helvetica = Family{Name: "helvetica", Regular: "Helvetica", Bold: "Helvetica-Bold"}
	Courier   = Family{Name: "courier", Regular: "Courier", Bold: "Courier-Bold"}
)

// FamilyByName returns the family for "helvetica" or "courier".
func FamilyByName(name string) (Family, bool) {
	switch strings.ToLower(name) {
	case "", "helvetica":
		return Helvetica, true
	case "courier":
		return Courier, true
	}
	return Family{}, false
}

// Advance widths in 1/1000 em for WinAnsi codes 32..126, from the Adobe
// core font metrics.
var helveticaWidths = [95]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // space../
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0..?
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @..O
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P.._
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // `..o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p..~
}

var helveticaBoldWidths = [95]uint16{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// A few common WinAnsi codes above 127; others use the font's default width.
var helveticaHigh = map[byte]uint16{
	0x85: 1000, // ellipsis
	0x91: 222, 0x92: 222, 0x93: 333, 0x94: 333,
	0x95: 350,  // bullet
	0x96: 556,  // en dash
	0x97: 1000, // em dash
	0xA9: 737,  // copyright
	0xB0: 400,  // degree
}

const (
	defaultWidth = 556
	courierWidth = 600
)

func glyphWidth(font string, ch byte) uint16 {
	switch font {
	case "Courier", "Courier-Bold":
		return courierWidth
	}

	if ch >= 32 && ch <= 126 {
		if font == "Helvetica-Bold" {
			return helveticaBoldWidths[ch-32]
		}
		return helveticaWidths[ch-32]
	}
	if w, ok := helveticaHigh[ch]; ok {
		return w
	}
	return defaultWidth
}

// TextWidth returns the width in points of s set in font at size.
func TextWidth(font string, size float64, s string) float64 {
	enc := EncodeWinAnsi(s)
	var units int
	for i := 0; i < len(enc); i++ {
		units += int(glyphWidth(font, enc[i]))
	}
	return float64(units) * size / 1000
}

const ellipsis = "..."

// Truncate shortens s so it fits within maxWidth points, appending "..." when
// anything was cut. If even the ellipsis does not fit, it returns "".
func Truncate(font string, size, maxWidth float64, s string) string {
	if TextWidth(font, size, s) <= maxWidth {
		return s
	}
	budget := maxWidth - TextWidth(font, size, ellipsis)
	if budget < 0 {
		return ""
	}

	runes := []rune(s)
	width := 0.0
	cut := 0
	for i, r := range runes {
		w := TextWidth(font, size, string(r))
		if width+w > budget {
			break
		}
		width += w
		cut = i + 1
	}
	return strings.TrimRight(string(runes[:cut]), " ") + ellipsis
}
