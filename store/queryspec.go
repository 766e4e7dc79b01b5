package store

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps pathological limit values instead of rejecting them;
	// listing endpoints stay permissive.
	MaxLimit = 100

	DefaultSortField = "created_at"
)

// Sortable field whitelists per entity. An unknown sortBy falls back to the
// default sort field rather than reaching the database.
var (
	TutorSortFields    = []string{"created_at", "price", "average_rating", "experience"}
	CategorySortFields = []string{"created_at", "name"}
	BookingSortFields  = []string{"created_at", "date", "status"}
	ReviewSortFields   = []string{"created_at", "rating"}
)

// QuerySpec is the validated pagination/sort/filter descriptor for one list
// request. It is never persisted.
type QuerySpec struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string

	Search     string
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Status     string
}

// BuildQuerySpec turns raw query parameters into a QuerySpec. Malformed
// numeric filters are treated as absent, not as errors.
func BuildQuerySpec(raw map[string]string, sortable []string) QuerySpec {
	spec := QuerySpec{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortField,
		SortOrder: "desc",
	}

	if page, err := strconv.Atoi(raw["page"]); err == nil && page >= 1 {
		spec.Page = page
	}
	if limit, err := strconv.Atoi(raw["limit"]); err == nil && limit > 0 {
		spec.Limit = limit
	}
	if spec.Limit > MaxLimit {
		spec.Limit = MaxLimit
	}
	spec.Skip = (spec.Page - 1) * spec.Limit

	if sortBy := raw["sortBy"]; sortBy != "" && slices.Contains(sortable, sortBy) {
		spec.SortBy = sortBy
	}
	if order := strings.ToLower(raw["sortOrder"]); order == "asc" {
		spec.SortOrder = "asc"
	}

	spec.Search = strings.TrimSpace(raw["search"])
	spec.Status = raw["status"]

	if id, err := uuid.Parse(raw["categoryId"]); err == nil {
		spec.CategoryID = &id
	}
	spec.MinPrice = parseFloat(raw["minPrice"])
	spec.MaxPrice = parseFloat(raw["maxPrice"])
	spec.MinRating = parseFloat(raw["rating"])

	return spec
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
