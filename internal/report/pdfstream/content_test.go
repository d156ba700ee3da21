package pdfstream

import (
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{40, "40"},
		{0.7, "0.7"},
		{841.89, "841.89"},
		{1.0 / 3, "0.333"},
		{-0.0001, "0"},
		{-12.5, "-12.5"},
		{1e9, "1000000000"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeWinAnsi(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"KOTA", "KOTA"},
		{"café", "caf\xe9"},
		{"a — b", "a \x97 b"},
		{"€5", "\x805"},
		{"राम", "???"},
		{"tab\there", "tab here"},
	}
	for _, tt := range tests {
		if got := EncodeWinAnsi(tt.in); got != tt.want {
			t.Errorf("EncodeWinAnsi(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := escape(`a(b)c\d`); got != `a\(b\)c\\d` {
		t.Errorf("escape() = %q", got)
	}
	if got := escape("line\nbreak"); got != `line\nbreak` {
		t.Errorf("escape() = %q", got)
	}
}

func TestContentOperators(t *testing.T) {
	var c Content
	c.Save()
	c.SetGState(WatermarkGState)
	c.SetFillColor(RGB(255, 0, 0))
	c.FillRect(10, 20, 30, 40)
	c.RotatedText(BoldFontName, 60, 100, 100, 90, "W")
	c.Restore()

	want := []string{
		"q",
		"/GS1 gs",
		"1 0 0 rg",
		"10 20 30 40 re f",
		"BT /F2 60 Tf 0 1 -1 0 100 100 Tm (W) Tj ET",
		"Q",
	}
	got := strings.Split(strings.TrimSpace(string(c.Bytes())), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d operators, want %d:\n%s", len(got), len(want), c.Bytes())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d = %q, want %q", i, got[i], want[i])
		}
	}

	c.Reset()
	if len(c.Bytes()) != 0 {
		t.Error("Reset() left content behind")
	}
}

func TestTextString(t *testing.T) {
	if got := textString("plain (x)"); got != `(plain \(x\))` {
		t.Errorf("textString(ascii) = %q", got)
	}
	if got := textString("a—b"); got != "<FEFF006120140062>" {
		t.Errorf("textString(non-ascii) = %q", got)
	}
}
