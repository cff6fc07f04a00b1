package query

import (
	"testing"

	domainerrors "blog/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		maxLimit int
		want     Pagination
	}{
		{name: "first page", page: 1, limit: 5, maxLimit: 100, want: Pagination{Page: 1, Limit: 5, Skip: 0}},
		{name: "third page", page: 3, limit: 5, maxLimit: 100, want: Pagination{Page: 3, Limit: 5, Skip: 10}},
		{name: "defaults on zero", page: 0, limit: 0, maxLimit: 100, want: Pagination{Page: 1, Limit: 10, Skip: 0}},
		{name: "defaults on negative", page: -4, limit: -1, maxLimit: 100, want: Pagination{Page: 1, Limit: 10, Skip: 0}},
		{name: "limit clamped", page: 2, limit: 5000, maxLimit: 100, want: Pagination{Page: 2, Limit: 100, Skip: 100}},
		{name: "no clamp when max unset", page: 1, limit: 5000, maxLimit: 0, want: Pagination{Page: 1, Limit: 5000, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.page, tt.limit, tt.maxLimit))
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, int64(3), PageCount(12, 5))
	assert.Equal(t, int64(2), PageCount(10, 5))
	assert.Equal(t, int64(0), PageCount(0, 5))
	assert.Equal(t, int64(0), PageCount(10, 0))
}

func TestSearch_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		pred, err := Search(raw)
		assert.Nil(t, pred)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrEmptyQuery))
	}
}

func TestSearch_LikePattern(t *testing.T) {
	pred, err := Search("  Hello World ")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", pred.Term)
	assert.Equal(t, "%hello world%", pred.LikePattern())

	pred, err = Search(`50%_off\`)
	require.NoError(t, err)
	assert.Equal(t, `%50\%\_off\\%`, pred.LikePattern())
}

func TestListAndSearchQuery(t *testing.T) {
	list := ListQuery(Paginate(2, 5, 100))
	require.NotNil(t, list.Pagination)
	assert.Equal(t, 5, list.Pagination.Skip)
	assert.Nil(t, list.Search)
	assert.Equal(t, NewestFirst, list.Order)

	pred, err := Search("go")
	require.NoError(t, err)
	search := SearchQuery(pred)
	assert.Nil(t, search.Pagination)
	assert.Equal(t, pred, search.Search)
}
