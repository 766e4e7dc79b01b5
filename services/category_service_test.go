package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/edumatch/tutor_marketplace/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService(t *testing.T) (*testutils.MemDB, *services.CategoryService) {
	t.Helper()
	db := testutils.NewMemDB()
	return db, services.NewCategoryService(db.Categories())
}

func TestCategoryCreate(t *testing.T) {
	_, svc := newCategoryService(t)

	desc := "All things math"
	category, err := svc.Create("Mathematics", &desc, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Mathematics", category.Name)
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	_, svc := newCategoryService(t)

	_, err := svc.Create("Physics", nil, nil)
	require.NoError(t, err)

	_, err = svc.Create("Physics", nil, nil)
	assert.ErrorIs(t, err, errdefs.ErrConflict)
}

func TestCategoryUpdate(t *testing.T) {
	_, svc := newCategoryService(t)

	category, err := svc.Create("Chemestry", nil, nil)
	require.NoError(t, err)

	name := "Chemistry"
	icon := "flask"
	updated, err := svc.Update(category.ID, services.UpdateCategoryInput{Name: &name, Icon: &icon})
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", updated.Name)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, "flask", *updated.Icon)
}

func TestCategoryUpdate_DuplicateName(t *testing.T) {
	_, svc := newCategoryService(t)

	_, err := svc.Create("Biology", nil, nil)
	require.NoError(t, err)
	category, err := svc.Create("Botany", nil, nil)
	require.NoError(t, err)

	name := "Biology"
	_, err = svc.Update(category.ID, services.UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, errdefs.ErrConflict)

	// Re-submitting its own name is not a conflict.
	name = "Botany"
	_, err = svc.Update(category.ID, services.UpdateCategoryInput{Name: &name})
	assert.NoError(t, err)
}

func TestCategoryDelete(t *testing.T) {
	_, svc := newCategoryService(t)

	category, err := svc.Create("History", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(category.ID))

	_, err = svc.GetByID(category.ID)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(uuid.New()), errdefs.ErrNotFound)
}

func TestCategoryDelete_BlockedWhileInUse(t *testing.T) {
	db, svc := newCategoryService(t)

	category, err := svc.Create("Music", nil, nil)
	require.NoError(t, err)

	tutor := &models.User{FullName: "Tom Tutor", Email: "tom@example.com", Role: models.RoleTutor, Status: models.UserStatusActive}
	require.NoError(t, db.Users().Create(tutor))
	require.NoError(t, db.Tutors().Create(&models.TutorProfile{
		UserID:     tutor.ID,
		Price:      25,
		Categories: []*models.Category{category},
	}))

	err = svc.Delete(category.ID)
	assert.ErrorIs(t, err, errdefs.ErrConflict)

	_, err = svc.GetByID(category.ID)
	assert.NoError(t, err)
}

func TestCategoryList_Pagination(t *testing.T) {
	_, svc := newCategoryService(t)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(fmt.Sprintf("Subject %02d", i), nil, nil)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	sizes := map[int]int{1: 10, 2: 10, 3: 5}
	for page, want := range sizes {
		spec := store.BuildQuerySpec(map[string]string{"page": fmt.Sprint(page)}, store.CategorySortFields)
		result, err := svc.List(spec)
		require.NoError(t, err)
		assert.Len(t, result.Data, want, "page %d", page)
		assert.Equal(t, int64(25), result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
	}

	// Past the last page: empty data, same totals.
	spec := store.BuildQuerySpec(map[string]string{"page": "4"}, store.CategorySortFields)
	result, err := svc.List(spec)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, int64(25), result.Pagination.Total)
}

func TestCategoryList_SearchAndSort(t *testing.T) {
	_, svc := newCategoryService(t)

	desc := "numbers and proofs"
	_, err := svc.Create("Mathematics", &desc, nil)
	require.NoError(t, err)
	_, err = svc.Create("Art", nil, nil)
	require.NoError(t, err)
	_, err = svc.Create("Applied Math", nil, nil)
	require.NoError(t, err)

	spec := store.BuildQuerySpec(map[string]string{"search": "math", "sortBy": "name", "sortOrder": "asc"}, store.CategorySortFields)
	result, err := svc.List(spec)
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "Applied Math", result.Data[0].Name)
	assert.Equal(t, "Mathematics", result.Data[1].Name)

	// Description matches too.
	spec = store.BuildQuerySpec(map[string]string{"search": "proofs"}, store.CategorySortFields)
	result, err = svc.List(spec)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Mathematics", result.Data[0].Name)
}
