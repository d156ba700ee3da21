package core

import (
	"net/url"
	"strings"
)

// FilterColumns is the allow-list of columns a caller may filter on.
var FilterColumns = []string{ColPFNo, ColBillUnit, ColDesig, ColStation, ColBooth}

var filterAllowed = func() map[string]bool {
	m := make(map[string]bool, len(FilterColumns))
	for _, c := range FilterColumns {
		m[c] = true
	}
	return m
}()

// IsFilterColumn reports whether col is on the filter allow-list.
func IsFilterColumn(col string) bool {
	return filterAllowed[col]
}

// Criteria maps allow-listed columns to non-empty query strings.
// Build it with NewCriteria or ParseCriteria so the invariants hold.
type Criteria map[string]string

// NewCriteria keeps only allow-listed keys with non-empty values.
func NewCriteria(raw map[string]string) Criteria {
	c := make(Criteria)
	for k, v := range raw {
		if v == "" || !IsFilterColumn(k) {
			continue
		}
		c[k] = v
	}
	return c
}

// ParseCriteria extracts filter criteria from query parameters.
// Unknown keys (page, limit, anything else) are ignored; for repeated keys the
// first value wins.
func ParseCriteria(q url.Values) Criteria {
	c := make(Criteria)
	for _, col := range FilterColumns {
		if v := q.Get(col); v != "" {
			c[col] = v
		}
	}
	return c
}

// Active reports whether any predicate is set.
func (c Criteria) Active() bool {
	return len(c) > 0
}

// View is an ordered subsequence of the store. It shares Record values with
// the store, so it must be treated as read-only.
type View []Record

type predicate struct {
	column string
	needle string
}

// Filter returns the records matching every criterion, in store order.
// Matching is case-insensitive substring containment; a missing value is "".
// Keys outside the allow-list are ignored.
func Filter(records []Record, criteria Criteria) View {
	preds := make([]predicate, 0, len(criteria))
	for _, col := range FilterColumns {
		v, ok := criteria[col]
		if !ok || v == "" {
			continue
		}
		preds = append(preds, predicate{column: col, needle: strings.ToLower(v)})
	}

	out := make(View, 0, estimateCap(len(records), len(preds)))
	for _, rec := range records {
		if matches(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec Record, preds []predicate) bool {
	for _, p := range preds {
		if !strings.Contains(strings.ToLower(rec.Get(p.column)), p.needle) {
			return false
		}
	}
	return true
}

// estimateCap avoids reallocating the full store size for narrow filters.
func estimateCap(n, preds int) int {
	if preds == 0 {
		return n
	}
	if n < 64 {
		return n
	}
	return n / 8
}
