package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
	// MaxPage keeps (Page-1)*Limit and Page*Limit inside int.
	MaxPage = math.MaxInt / MaxLimit
)

// URL: /api/search?page=2&limit=20
// → ParsePagination() → Pagination{Limit:20, Page:2, Offset:20}
// → SQL: ... LIMIT 20 OFFSET 20
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"per_page"`     // items per page
	Offset     int  `json:"-"`            // SQL OFFSET value
	Page       int  `json:"current_page"` // current page number, 1-based
	Total      int  `json:"total"`        // rows matching the filters before LIMIT/OFFSET
	TotalPages int  `json:"pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// New returns a Pagination for page and limit. Values <= 0 fall back to the
// defaults, limit is capped at MaxLimit and page at MaxPage.
func New(page, limit int) Pagination {
	p := Pagination{Limit: DefaultLimit, Page: 1}

	switch {
	case limit <= 0:
	case limit > MaxLimit:
		p.Limit = MaxLimit
	default:
		p.Limit = limit
	}

	switch {
	case page <= 0:
	case page > MaxPage:
		p.Page = MaxPage
	default:
		p.Page = page
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ParsePagination parses ?limit=...&page=... safely. Malformed values are
// clamped to the defaults rather than rejected. Keys are case sensitive.
func ParsePagination(q url.Values) Pagination {
	return New(atoi(q.Get("page")), atoi(q.Get("limit")))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}
