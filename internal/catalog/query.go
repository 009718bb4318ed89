package catalog

import (
	"sort"
	"strings"

	"github.com/pustakaid/bookstore-backend/pkg/pagination"
)

// Query carries the browse knobs for the catalog list endpoint. Zero values
// mean "no filtering" for search/condition/genre and defaults for paging.
type Query struct {
	Search    string
	Condition Condition
	GenreID   int
	Sort      string
	Page      pagination.Params
}

// Result is one page of books plus the pagination metadata computed over the
// filtered (pre-pagination) set.
type Result struct {
	Data []Book          `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// RunQuery applies filter, sort, and pagination over an already-loaded
// catalog. Pure: the input slice is not modified and no I/O happens here.
func RunQuery(books []Book, q Query) Result {
	filtered := make([]Book, 0, len(books))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, b := range books {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.Writer), search) {
			continue
		}
		if q.Condition != "" && b.Condition != q.Condition {
			continue
		}
		if q.GenreID != 0 && b.Genre.ID != q.GenreID {
			continue
		}
		filtered = append(filtered, b)
	}

	sortBooks(filtered, q.Sort)

	params := pagination.Normalize(q.Page)
	start, end := params.Bounds(len(filtered))
	return Result{
		Data: filtered[start:end],
		Meta: pagination.MetaFor(len(filtered), params),
	}
}

// sortBooks orders the slice in place per a "field:direction" spec. The sort
// is stable so equal-key records keep their relative (insertion) order. A
// malformed or unknown spec leaves the input order untouched; browsing is
// read-only and degrades gracefully instead of rejecting the request.
func sortBooks(books []Book, spec string) {
	field, desc, ok := parseSort(spec)
	if !ok {
		return
	}

	var less func(a, b Book) bool
	switch field {
	case "title":
		less = func(a, b Book) bool { return a.Title < b.Title }
	case "writer":
		less = func(a, b Book) bool { return a.Writer < b.Writer }
	case "price":
		less = func(a, b Book) bool { return a.Price < b.Price }
	case "publication_year":
		less = func(a, b Book) bool { return yearOf(a) < yearOf(b) }
	default:
		return
	}

	sort.SliceStable(books, func(i, j int) bool {
		if desc {
			return less(books[j], books[i])
		}
		return less(books[i], books[j])
	})
}

func parseSort(spec string) (field string, desc bool, ok bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", false, false
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return "", false, false
	}
	field = strings.ToLower(strings.TrimSpace(parts[0]))
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "asc":
		return field, false, field != ""
	case "desc":
		return field, true, field != ""
	}
	return "", false, false
}

func yearOf(b Book) int {
	if b.PublicationYear == nil {
		return 0
	}
	return *b.PublicationYear
}
