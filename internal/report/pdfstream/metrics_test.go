package pdfstream

import "testing"

func TestTextWidth(t *testing.T) {
	tests := []struct {
		font string
		size float64
		text string
		want float64
	}{
		{"Helvetica", 10, "", 0},
		{"Helvetica", 10, "A", 6.67},
		{"Helvetica-Bold", 10, "A", 7.22},
		{"Helvetica", 1000, "il", 444},
		{"Courier", 10, "anything", 48},
		{"Courier-Bold", 9, "ab", 10.8},
	}
	for _, tt := range tests {
		got := TextWidth(tt.font, tt.size, tt.text)
		if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
			t.Errorf("TextWidth(%s, %v, %q) = %v, want %v", tt.font, tt.size, tt.text, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	const font = "Courier" // 6pt per glyph at size 10

	tests := []struct {
		name  string
		width float64
		in    string
		want  string
	}{
		{"fits", 60, "0123456789", "0123456789"},
		{"cut with ellipsis", 42, "0123456789", "0123..."},
		{"trailing space dropped", 48, "ab   cdefgh", "ab..."},
		{"too narrow for ellipsis", 10, "0123456789", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(font, 10, tt.width, tt.in)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if TextWidth(font, 10, got) > tt.width {
				t.Errorf("Truncate() result %q is wider than %v", got, tt.width)
			}
		})
	}
}

func TestFamilyByName(t *testing.T) {
	if f, ok := FamilyByName("COURIER"); !ok || f.Bold != "Courier-Bold" {
		t.Errorf("FamilyByName(COURIER) = %v, %v", f, ok)
	}
	if f, ok := FamilyByName(""); !ok || f != Helvetica {
		t.Errorf("FamilyByName(\"\") = %v, %v", f, ok)
	}
	if _, ok := FamilyByName("times"); ok {
		t.Error("FamilyByName(times) ok = true")
	}
}
