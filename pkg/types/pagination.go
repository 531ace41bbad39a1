package types

// Pagination são os metadados de uma página.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// Page é uma fatia contígua de uma lista já ordenada.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func (p Page[T]) HasNext() bool {
	return p.Pagination.Page < p.Pagination.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Pagination.Page > 1
}
