package service

import "quizbank/internal/dto"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePagination applies the same defaults as the repositories so the
// reported pagination info matches the rows returned.
func normalizePagination(p dto.Pagination) dto.Pagination {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset <= 0 && p.Page > 1 {
		p.Offset = (p.Page - 1) * p.Limit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func newPaginationInfo(total int, p dto.Pagination) dto.PaginationInfo {
	p = normalizePagination(p)
	return dto.PaginationInfo{
		TotalItems:  int64(total),
		Limit:       p.Limit,
		Offset:      p.Offset,
		CurrentPage: p.Offset/p.Limit + 1,
		TotalPages:  (total + p.Limit - 1) / p.Limit,
	}
}

// pageOf slices an in-memory list the way the repositories page query results.
func pageOf[T any](items []T, p dto.Pagination) []T {
	p = normalizePagination(p)
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
