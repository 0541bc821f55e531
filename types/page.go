package types

// Page is a bounded, ordered slice of a result set plus pagination
// metadata. last_page is always at least 1 so an empty result still has
// a well-formed page range; a page past the end yields empty items with
// the metadata intact, never an error.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// NewPage computes the pagination metadata for a page of items.
func NewPage[T any](items []T, page, perPage int, total int64) *Page[T] {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		CurrentPage: page,
		LastPage:    last,
		PerPage:     perPage,
		Total:       total,
	}
}
