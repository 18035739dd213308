package queries_test

import (
	"math"
	"testing"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("should split twelve items into 5, 5 and 2", func(t *testing.T) {
		var sizes []int
		for page := 1; page <= 3; page++ {
			p, err := queries.Paginate(items, page, queries.PageSize)
			require.NoError(t, err)
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, 12, p.TotalItems)
			assert.Equal(t, page, p.Number)
			sizes = append(sizes, len(p.Items))
		}
		assert.Equal(t, []int{5, 5, 2}, sizes)
	})

	t.Run("should keep order within a page", func(t *testing.T) {
		p, err := queries.Paginate(items, 2, queries.PageSize)
		require.NoError(t, err)
		assert.Equal(t, []int{6, 7, 8, 9, 10}, p.Items)
		assert.True(t, p.HasPrev())
		assert.True(t, p.HasNext())
	})

	t.Run("should return an empty page past the end", func(t *testing.T) {
		p, err := queries.Paginate(items, 4, queries.PageSize)
		require.NoError(t, err)
		assert.Empty(t, p.Items)
		assert.NotNil(t, p.Items)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.HasNext())
	})

	t.Run("should return an empty page for a huge page number", func(t *testing.T) {
		var p queries.Page[int]
		var err error
		assert.NotPanics(t, func() {
			p, err = queries.Paginate(items, math.MaxInt64/queries.PageSize+2, queries.PageSize)
		})
		require.NoError(t, err)
		assert.Empty(t, p.Items)
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("should reject pages below one", func(t *testing.T) {
		_, err := queries.Paginate(items, 0, queries.PageSize)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should report zero pages for no items", func(t *testing.T) {
		p, err := queries.Paginate([]string{}, 1, queries.PageSize)
		require.NoError(t, err)
		assert.Equal(t, 0, p.TotalPages)
		assert.Empty(t, p.Items)
		assert.False(t, p.HasPrev())
	})

	t.Run("should not let callers grow into the next page", func(t *testing.T) {
		p, err := queries.Paginate(items, 1, queries.PageSize)
		require.NoError(t, err)
		_ = append(p.Items, 100)
		assert.Equal(t, 6, items[5])
	})
}

func TestNewGetAvailableOrdersQuery(t *testing.T) {
	_, err := queries.NewGetAvailableOrdersQuery(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	q, err := queries.NewGetAvailableOrdersQuery(3)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page())

	require.ErrorIs(t, queries.GetAvailableOrdersQuery{}.Validate(), queries.ErrGetAvailableOrdersQueryIsNotConstructed)
}
