package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate(t *testing.T) {
	list := seq(20)

	t.Run("segunda página de nove", func(t *testing.T) {
		page := Paginate(list, 9, 2)
		assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, page.Items)
		assert.Equal(t, 2, page.Pagination.Page)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, 20, page.Pagination.TotalCount)
		assert.True(t, page.HasNext())
		assert.True(t, page.HasPrev())
	})

	t.Run("tamanho maior que a lista cabe em uma página", func(t *testing.T) {
		long := seq(150)
		page := Paginate(long, 200, 1)
		assert.Len(t, page.Items, 150)
		assert.Equal(t, 1, page.Pagination.TotalPages)
		assert.Equal(t, 200, page.Pagination.Limit)
		assert.False(t, page.HasNext())
	})

	t.Run("página além do fim volta para a última", func(t *testing.T) {
		page := Paginate(list, 9, 99)
		assert.Equal(t, 3, page.Pagination.Page)
		assert.Equal(t, []int{18, 19}, page.Items)
		assert.False(t, page.HasNext())
	})

	t.Run("página zero ou negativa vira a primeira", func(t *testing.T) {
		page := Paginate(list, 9, -4)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, seq(9), page.Items)
	})

	t.Run("lista vazia", func(t *testing.T) {
		page := Paginate([]int{}, 9, 3)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, 0, page.Pagination.TotalPages)
		assert.Empty(t, page.Items)
	})

	t.Run("tamanho inválido usa o padrão", func(t *testing.T) {
		page := Paginate(list, 0, 1)
		assert.Len(t, page.Items, DefaultPageSize)
	})

	t.Run("não altera a lista original", func(t *testing.T) {
		original := seq(20)
		page := Paginate(original, 9, 1)
		require.NotEmpty(t, page.Items)
		page.Items[0] = 999
		assert.Equal(t, seq(20), original)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 0, TotalPages(10, 0))
}
