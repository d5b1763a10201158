package response

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NormalizePage clamps page and size and returns the zero-based offset.
func NormalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, (page - 1) * size
}

// NewPagination describes a page of returned items out of total. From and To
// are 1-based and zero when the page is empty.
func NewPagination(page, size, returned int, total int64) *Pagination {
	p := &Pagination{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
	}
	if size > 0 {
		p.TotalPages = (total + int64(size) - 1) / int64(size)
	}
	if returned > 0 {
		p.From = (page-1)*size + 1
		p.To = p.From + returned - 1
	}
	p.HasMore = int64(page*size) < total
	return p
}
