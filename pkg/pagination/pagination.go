package pagination

const (
	// DefaultPage is the 1-indexed page used when none is provided.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 8
	// MaxLimit caps how many records any list query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside every list response.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the 1-indexed page number.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Normalize returns params with page and limit defaults applied.
func Normalize(p Params) Params {
	return Params{
		Page:  NormalizePage(p.Page),
		Limit: NormalizeLimit(p.Limit),
	}
}

// Offset returns the zero-based index of the first record on the page.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// MetaFor computes the response metadata for a filtered result of size total.
// An empty result yields totalPages = 0, matching ceil(0/limit).
func MetaFor(total int, p Params) Meta {
	p = Normalize(p)
	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: (total + p.Limit - 1) / p.Limit,
	}
}

// Bounds returns the [start, end) slice indices for the page, clamped to the
// result size. A page past the end yields an empty range, not an error.
func (p Params) Bounds(total int) (int, int) {
	start := p.Offset()
	if start >= total {
		return total, total
	}
	end := start + NormalizeLimit(p.Limit)
	if end > total {
		end = total
	}
	return start, end
}
