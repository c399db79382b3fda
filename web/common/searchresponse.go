package common

// Pagination describes the window of a search result. Take is zero when the
// whole result was returned.
type Pagination struct {
	Total int64 `json:"total"`
	Take  int   `json:"take,omitempty"`
	Skip  int   `json:"skip,omitempty"`
}

type SearchResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewSearchResponse pages items by take and skip. Data is never null.
func NewSearchResponse[T any](items []T, take, skip int) *SearchResponse[T] {
	page := Pagination{Total: int64(len(items)), Take: take, Skip: skip}

	skip = min(skip, len(items))
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	if items == nil {
		items = []T{}
	}
	return &SearchResponse[T]{Data: items, Pagination: page}
}
