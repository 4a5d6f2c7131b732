// Package listview holds the list-with-search pattern every dashboard screen
// uses: load a collection once, then derive a filtered view from a free-text
// query without touching the source records.
package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

// Searchable exposes the fields a free-text query is matched against.
type Searchable interface {
	SearchFields() []string
}

// Filter returns the records whose searchable fields contain query as a
// case-insensitive substring, in source order. A blank query returns a copy
// of every record. items is never modified.
func Filter[T Searchable](items []T, query string) []T {
	q := strings.TrimSpace(query)
	out := make([]T, 0, len(items))
	if q == "" {
		return append(out, items...)
	}
	fold := cases.Fold()
	needle := fold.String(q)
	for _, it := range items {
		if Matches(fold, it, needle) {
			out = append(out, it)
		}
	}
	return out
}

// Matches reports whether any searchable field of it contains the already
// folded needle.
func Matches(fold cases.Caser, it Searchable, needle string) bool {
	for _, f := range it.SearchFields() {
		if f == "" {
			continue
		}
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
