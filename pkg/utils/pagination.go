package utils

import (
	"slices"

	"solicitation-system/pkg/types"
)

const (
	// DefaultPageSize — cartões por página na lista de solicitações.
	DefaultPageSize = 9
	// DefaultReferencePageSize — linhas por página nas listas de cadastro.
	DefaultReferencePageSize = 10
)

// TotalPages = ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate devolve a página pageNumber de list, limitando o número da
// página a [1, TotalPages]. Não altera list.
func Paginate[T any](list []T, pageSize, pageNumber int) types.Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(list)
	totalPages := TotalPages(total, pageSize)

	page := pageNumber
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	items := []T{}
	if start < end {
		items = slices.Clone(list[start:end])
	}

	return types.Page[T]{
		Items: items,
		Pagination: types.Pagination{
			TotalCount: total,
			Page:       page,
			Limit:      pageSize,
			TotalPages: totalPages,
		},
	}
}
