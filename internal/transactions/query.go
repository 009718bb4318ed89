package transactions

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pustakaid/bookstore-backend/pkg/pagination"
)

// Query carries the ledger listing knobs. Search matches a substring of the
// transaction id; UserID, when set, restricts the view to one account.
type Query struct {
	Search string
	UserID uuid.UUID
	Sort   string
	Page   pagination.Params
}

// Result is one page of transactions plus the pagination metadata computed
// over the filtered set.
type Result struct {
	Data []Transaction   `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// RunQuery applies filter, sort, and pagination over the loaded ledger. Pure
// like the catalog pipeline: the input slice is never modified.
func RunQuery(txns []Transaction, q Query) Result {
	filtered := make([]Transaction, 0, len(txns))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range txns {
		if search != "" && !strings.Contains(strings.ToLower(t.ID.String()), search) {
			continue
		}
		if q.UserID != uuid.Nil && t.UserID != q.UserID {
			continue
		}
		filtered = append(filtered, t)
	}

	sortTransactions(filtered, q.Sort)

	params := pagination.Normalize(q.Page)
	start, end := params.Bounds(len(filtered))
	return Result{
		Data: filtered[start:end],
		Meta: pagination.MetaFor(len(filtered), params),
	}
}

// sortTransactions mirrors the catalog's sort contract: stable, field:direction
// specs, malformed specs leave the ledger in insertion order.
func sortTransactions(txns []Transaction, spec string) {
	field, desc, ok := parseSort(spec)
	if !ok {
		return
	}

	var less func(a, b Transaction) bool
	switch field {
	case "created_at":
		less = func(a, b Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "total_price":
		less = func(a, b Transaction) bool { return a.TotalPrice < b.TotalPrice }
	case "total_items":
		less = func(a, b Transaction) bool { return a.TotalItems < b.TotalItems }
	default:
		return
	}

	sort.SliceStable(txns, func(i, j int) bool {
		if desc {
			return less(txns[j], txns[i])
		}
		return less(txns[i], txns[j])
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
