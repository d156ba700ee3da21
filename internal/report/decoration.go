package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/staffdir/internal/config"
	"github.com/JonMunkholm/staffdir/internal/report/pdfstream"
)

// Decoration is everything drawn around the data: title, watermark, footer,
// fonts and colors.
type Decoration struct {
	Title       string
	Attribution string
	Family      pdfstream.Family

	Watermark        string
	WatermarkOpacity float64
	WatermarkAngle   float64 // degrees, counterclockwise
	WatermarkSize    float64

	Shading ShadingPolicy

	HeaderFill pdfstream.Color
	HeaderText pdfstream.Color
	StripeFill pdfstream.Color
	GridColor  pdfstream.Color
	GridWidth  float64

	TitleSize     float64
	HeaderSize    float64
	CellSize      float64
	FooterSize    float64
	HeaderPadding float64
	CellPadding   float64
}

// DefaultDecoration matches the stock export look.
func DefaultDecoration() Decoration {
	return Decoration{
		Title:            "WCRMS KOTA — Filtered Data List",
		Attribution:      "Created By: M. A. Khan",
		Family:           pdfstream.Helvetica,
		Watermark:        "WCRMS KOTA",
		WatermarkOpacity: 0.22,
		WatermarkAngle:   45,
		WatermarkSize:    60,
		Shading:          ShadeAbsolute,
		HeaderFill:       pdfstream.RGB(0x0f, 0x17, 0x2a),
		HeaderText:       pdfstream.White,
		StripeFill:       pdfstream.RGB(0xf5, 0xf5, 0xf5),
		GridColor:        pdfstream.RGB(0xbf, 0xbf, 0xbf),
		GridWidth:        0.7,
		TitleSize:        16,
		HeaderSize:       10,
		CellSize:         9,
		FooterSize:       8,
		HeaderPadding:    4,
		CellPadding:      3,
	}
}

// DecorationFromConfig applies the report settings to the defaults.
func DecorationFromConfig(cfg config.ReportConfig) (Decoration, error) {
	d := DefaultDecoration()
	d.Title = cfg.Title
	d.Attribution = cfg.Attribution
	d.Watermark = cfg.Watermark
	d.WatermarkOpacity = cfg.WatermarkOpacity
	d.WatermarkAngle = cfg.WatermarkAngle
	if cfg.WatermarkSize > 0 {
		d.WatermarkSize = cfg.WatermarkSize
	}

	fam, ok := pdfstream.FamilyByName(cfg.Font)
	if !ok {
		return d, fmt.Errorf("unknown font family %q", cfg.Font)
	}
	d.Family = fam

	switch p := ShadingPolicy(strings.ToLower(cfg.Shading)); p {
	case "", ShadeAbsolute:
		d.Shading = ShadeAbsolute
	case ShadePage:
		d.Shading = ShadePage
	default:
		return d, fmt.Errorf("unknown shading policy %q", cfg.Shading)
	}

	colors := []struct {
		raw string
		dst *pdfstream.Color
	}{
		{cfg.HeaderFill, &d.HeaderFill},
		{cfg.StripeFill, &d.StripeFill},
		{cfg.GridColor, &d.GridColor},
	}
	for _, c := range colors {
		if c.raw == "" {
			continue
		}
		col, err := ParseHexColor(c.raw)
		if err != nil {
			return d, err
		}
		*c.dst = col
	}

	return d, nil
}

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (pdfstream.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return pdfstream.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pdfstream.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return pdfstream.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
