package repository

// DefaultPageSize is used when a request supplies no page size.
const DefaultPageSize = 10

// PagedQuery is the shared filter + sort + page request used by every list
// operation. Constructed per request, never persisted.
type PagedQuery struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	SelectAll bool   `json:"selectAll"`
	Sort      string `json:"sort"`    // e.g. "Name-ASC"; unknown keys fall back to the kind's default
	Keyword   string `json:"keyword"` // empty matches all rows
}

// normalize clamps the request to valid bounds without erroring.
func (q PagedQuery) normalize() PagedQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 && !q.SelectAll {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Page is the list result envelope. TotalCount covers the full filtered
// set, not just the returned slice.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

// TotalPages returns ceil(count/size), or 0 when size is not positive.
func TotalPages(count int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}
