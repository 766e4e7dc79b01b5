package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuerySpec_Defaults(t *testing.T) {
	spec := BuildQuerySpec(map[string]string{}, TutorSortFields)

	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.Limit)
	assert.Equal(t, 0, spec.Skip)
	assert.Equal(t, "created_at", spec.SortBy)
	assert.Equal(t, "desc", spec.SortOrder)
	assert.Empty(t, spec.Search)
	assert.Nil(t, spec.CategoryID)
	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Nil(t, spec.MinRating)
}

func TestBuildQuerySpec_PageAndSkip(t *testing.T) {
	spec := BuildQuerySpec(map[string]string{"page": "3", "limit": "20"}, TutorSortFields)

	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, 20, spec.Limit)
	assert.Equal(t, 40, spec.Skip)
}

func TestBuildQuerySpec_LimitClamped(t *testing.T) {
	spec := BuildQuerySpec(map[string]string{"limit": "5000"}, TutorSortFields)

	assert.Equal(t, MaxLimit, spec.Limit)
}

func TestBuildQuerySpec_InvalidPageAndLimitFallBack(t *testing.T) {
	for _, raw := range []map[string]string{
		{"page": "0", "limit": "0"},
		{"page": "-2", "limit": "-5"},
		{"page": "abc", "limit": "xyz"},
	} {
		spec := BuildQuerySpec(raw, TutorSortFields)
		assert.Equal(t, 1, spec.Page, "raw=%v", raw)
		assert.Equal(t, 10, spec.Limit, "raw=%v", raw)
	}
}

func TestBuildQuerySpec_SortWhitelist(t *testing.T) {
	spec := BuildQuerySpec(map[string]string{"sortBy": "price", "sortOrder": "asc"}, TutorSortFields)
	assert.Equal(t, "price", spec.SortBy)
	assert.Equal(t, "asc", spec.SortOrder)

	// Unknown sort field falls back instead of leaking into SQL.
	spec = BuildQuerySpec(map[string]string{"sortBy": "password; drop table users"}, TutorSortFields)
	assert.Equal(t, "created_at", spec.SortBy)

	// A field valid for one entity is not valid for another.
	spec = BuildQuerySpec(map[string]string{"sortBy": "price"}, CategorySortFields)
	assert.Equal(t, "created_at", spec.SortBy)
}

func TestBuildQuerySpec_SortOrderFallsBackToDesc(t *testing.T) {
	for _, order := range []string{"", "descending", "random", "ASCx"} {
		spec := BuildQuerySpec(map[string]string{"sortOrder": order}, TutorSortFields)
		assert.Equal(t, "desc", spec.SortOrder, "order=%q", order)
	}

	spec := BuildQuerySpec(map[string]string{"sortOrder": "ASC"}, TutorSortFields)
	assert.Equal(t, "asc", spec.SortOrder)
}

func TestBuildQuerySpec_MalformedFiltersAreAbsent(t *testing.T) {
	spec := BuildQuerySpec(map[string]string{
		"minPrice":   "cheap",
		"maxPrice":   "",
		"rating":     "five",
		"categoryId": "not-a-uuid",
	}, TutorSortFields)

	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Nil(t, spec.MinRating)
	assert.Nil(t, spec.CategoryID)
}

func TestBuildQuerySpec_Filters(t *testing.T) {
	id := uuid.New()
	spec := BuildQuerySpec(map[string]string{
		"search":     "  algebra  ",
		"minPrice":   "10.5",
		"maxPrice":   "50",
		"rating":     "4",
		"categoryId": id.String(),
		"status":     "confirmed",
	}, TutorSortFields)

	assert.Equal(t, "algebra", spec.Search)
	require.NotNil(t, spec.MinPrice)
	assert.Equal(t, 10.5, *spec.MinPrice)
	require.NotNil(t, spec.MaxPrice)
	assert.Equal(t, 50.0, *spec.MaxPrice)
	require.NotNil(t, spec.MinRating)
	assert.Equal(t, 4.0, *spec.MinRating)
	require.NotNil(t, spec.CategoryID)
	assert.Equal(t, id, *spec.CategoryID)
	assert.Equal(t, "confirmed", spec.Status)
}

func TestNewPagination_TotalPages(t *testing.T) {
	spec := QuerySpec{Page: 2, Limit: 10}

	p := NewPagination(25, spec)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(0, spec)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPagination(10, spec)
	assert.Equal(t, 1, p.TotalPages)
}
