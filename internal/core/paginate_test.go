package core

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
)

func makeView(n int) View {
	v := make(View, n)
	for i := range v {
		v[i] = Record{ColPFNo: fmt.Sprintf("PF%03d", i)}
	}
	return v
}

func TestPaginate(t *testing.T) {
	view := makeView(25)

	tests := []struct {
		name     string
		page     int
		limit    int
		wantLen  int
		wantPage int
		firstID  int
	}{
		{"first page", 1, 10, 10, 1, 1},
		{"second page", 2, 10, 10, 2, 11},
		{"partial last page", 3, 10, 5, 3, 21},
		{"past the end", 4, 10, 0, 4, 0},
		{"far past the end", 1 << 40, 10, 0, 1 << 40, 0},
		{"zero page clamps to 1", 0, 10, 10, 1, 1},
		{"negative limit clamps to 1", 2, -5, 1, 2, 2},
		{"limit larger than view", 1, 100, 25, 1, 1},
		{"max int page", math.MaxInt, 10, 0, math.MaxInt, 0},
		{"max int limit", 1, math.MaxInt, 25, 1, 1},
		{"max int limit second page", 2, math.MaxInt, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(view, tt.page, tt.limit)
			if got.Total != 25 {
				t.Errorf("Total = %d, want 25", got.Total)
			}
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if len(got.Rows) != tt.wantLen {
				t.Fatalf("len(Rows) = %d, want %d", len(got.Rows), tt.wantLen)
			}
			if got.Rows == nil {
				t.Error("Rows = nil, want empty slice")
			}
			for i, row := range got.Rows {
				if row.ID != tt.firstID+i {
					t.Errorf("Rows[%d].ID = %d, want %d", i, row.ID, tt.firstID+i)
				}
				if want := view[row.ID-1][ColPFNo]; row.Record[ColPFNo] != want {
					t.Errorf("Rows[%d] PF_NO = %q, want %q", i, row.Record[ColPFNo], want)
				}
			}
		})
	}
}

func TestPaginateLengthProperty(t *testing.T) {
	for n := 0; n <= 23; n++ {
		view := makeView(n)
		for size := 1; size <= 7; size++ {
			for page := 1; page <= 6; page++ {
				got := len(Paginate(view, page, size).Rows)
				want := n - (page-1)*size
				if want > size {
					want = size
				}
				if want < 0 {
					want = 0
				}
				if got != want {
					t.Errorf("n=%d size=%d page=%d: len = %d, want %d", n, size, page, got, want)
				}
			}
		}
	}
}

func TestPaginateEmptyView(t *testing.T) {
	got := Paginate(View{}, 1, 10)
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"total":0,"page":1,"limit":10,"data":[]}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestNumberedRecordJSON(t *testing.T) {
	n := NumberedRecord{ID: 11, Record: Record{ColPFNo: "123", ColStation: "KOTA"}}
	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got[IdentifierColumn] != float64(11) {
		t.Errorf("%s = %v, want 11", IdentifierColumn, got[IdentifierColumn])
	}
	if got[ColStation] != "KOTA" {
		t.Errorf("STATION = %v, want KOTA", got[ColStation])
	}
	if _, ok := n.Record[IdentifierColumn]; ok {
		t.Error("marshalling wrote the identifier back into the record")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{25, 10, 3},
		{5, 0, 5},
		{25, math.MaxInt, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
		def     int
		want    int
	}{
		{"absent uses default", "", false, 10, 10},
		{"valid value", "25", true, 10, 25},
		{"surrounding spaces", " 3 ", true, 10, 3},
		{"zero clamps to 1", "0", true, 10, 1},
		{"negative clamps to 1", "-4", true, 10, 1},
		{"garbage clamps to 1", "abc", true, 10, 1},
		{"empty string clamps to 1", "", true, 10, 1},
		{"fraction keeps integer part", "2.5", true, 10, 2},
		{"trailing junk ignored", "3abc", true, 10, 3},
		{"explicit plus sign", "+7", true, 10, 7},
		{"sign without digits", "-", true, 10, 1},
		{"leading junk clamps to 1", "x3", true, 10, 1},
		{"overflow saturates", "99999999999999999999", true, 10, math.MaxInt},
		{"negative overflow clamps to 1", "-99999999999999999999", true, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePageParam(tt.raw, tt.present, tt.def); got != tt.want {
				t.Errorf("ParsePageParam(%q, %v, %d) = %d, want %d", tt.raw, tt.present, tt.def, got, tt.want)
			}
		})
	}
}
