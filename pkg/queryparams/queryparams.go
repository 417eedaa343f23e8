package queryparams

// Pagination defaults and bounds shared by every list endpoint.
const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams carries the common list query parameters parsed from a request.
type ListParams struct {
	Page       int    `query:"page"`
	PerPage    int    `query:"per_page"`
	SortBy     string `query:"sort_by"`
	OrderBy    string `query:"order_by"`
	Status     string `query:"status"`
	Permission string `query:"permission"`
	Type       string `query:"type"`
}

// Validate clamps paging values into their allowed ranges.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset converts page/per-page into a row offset.
func (p ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta describes one page of a paginated result.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult is the envelope for paginated list data.
type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages returns the page count for a total row count.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}
