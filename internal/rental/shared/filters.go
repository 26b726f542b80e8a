// Package shared carries the list filter plumbing used by every rental screen.
package shared

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

const (
	// DefaultPage is the first page of a listing.
	DefaultPage = 1
	// DefaultLimit bounds a listing page.
	DefaultLimit = 10

	// SortAsc and SortDesc are the accepted sort directions.
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	// BusinessID narrows a listing to one agency; only meaningful for
	// SuperAdmin, scoped actors are already filtered.
	BusinessID string
	// Status narrows by entity-specific status.
	Status string
}

// FromQuery parses the standard filters out of a request's query string.
func FromQuery(r *http.Request) ListFilters {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = DefaultLimit
	}
	return ListFilters{
		Page:       page,
		Limit:      limit,
		Search:     q.Get("search"),
		SortBy:     q.Get("sort"),
		SortDir:    q.Get("dir"),
		BusinessID: q.Get("business_id"),
		Status:     q.Get("status"),
	}
}

var folder = cases.Fold()

// Matches reports whether the search term occurs in any of the fields,
// using Unicode case folding rather than ASCII lowercasing.
func (f ListFilters) Matches(fields ...string) bool {
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	folded := folder.String(term)
	for _, field := range fields {
		if strings.Contains(folder.String(field), folded) {
			return true
		}
	}
	return false
}

// Descending reports whether the sort direction is descending.
func (f ListFilters) Descending() bool {
	return strings.EqualFold(f.SortDir, SortDesc)
}

// Page slices items down to the requested page, clamping out-of-range
// requests to an empty page.
func Page[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
