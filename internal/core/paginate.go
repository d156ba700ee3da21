package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultPage and DefaultPageSize apply when the caller omits page/limit.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// NumberedRecord is a record decorated with its 1-based rank in the view.
type NumberedRecord struct {
	ID     int
	Record Record
}

// MarshalJSON flattens the identifier and columns into one object.
func (n NumberedRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Record)+1)
	for k, v := range n.Record {
		m[k] = v
	}
	m[IdentifierColumn] = n.ID
	return json.Marshal(m)
}

// Page is one window into a view.
type Page struct {
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Rows  []NumberedRecord `json:"data"`
}

// TotalPages returns ceil(total/pageSize), or 0 for an empty view.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}

// Paginate slices view into the requested page. page and pageSize below 1
// are treated as 1. A page past the end yields no rows and no error; Total
// is always the view length.
func Paginate(view View, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	result := Page{
		Total: len(view),
		Page:  page,
		Limit: pageSize,
		Rows:  []NumberedRecord{},
	}

	// Guard the multiplication for absurd page numbers.
	if page-1 > len(view)/pageSize {
		return result
	}
	start := (page - 1) * pageSize
	if start >= len(view) {
		return result
	}
	end := start + pageSize
	if end > len(view) || end < start {
		end = len(view)
	}

	result.Rows = make([]NumberedRecord, 0, end-start)
	for i, rec := range view[start:end] {
		result.Rows = append(result.Rows, NumberedRecord{ID: start + i + 1, Record: rec})
	}
	return result
}

// ParsePageParam normalizes a page or limit query value. An absent value
// yields def. A present value is read as its leading integer ("2.5" is 2,
// "3abc" is 3) and anything below 1, or with no leading digits, yields 1.
// Values past the int range saturate at math.MaxInt.
func ParsePageParam(raw string, present bool, def int) int {
	if !present {
		return def
	}
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// leadingInt reads an optional sign and the digits after it, ignoring the rest.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only a range error is possible on a run of digits.
		n = math.MaxInt
	}
	if neg {
		n = -n
	}
	return n, true
}
