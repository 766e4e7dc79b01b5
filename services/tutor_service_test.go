package services_test

import (
	"encoding/json"
	"testing"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/edumatch/tutor_marketplace/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTutorService(t *testing.T) (*testutils.MemDB, *services.TutorService) {
	t.Helper()
	db := testutils.NewMemDB()
	return db, services.NewTutorService(db.Tutors(), db.Categories())
}

func mustUser(t *testing.T, db *testutils.MemDB, name, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: name, Email: email, Role: models.RoleTutor, Status: models.UserStatusActive}
	require.NoError(t, db.Users().Create(user))
	return user
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestTutorCreateProfile(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	category := &models.Category{Name: "Mathematics"}
	require.NoError(t, db.Categories().Create(category))

	profile, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{
		Bio:          strPtr("Ten years teaching calculus"),
		Price:        45,
		Experience:   10,
		Availability: json.RawMessage(`{"mon":["09:00-12:00"]}`),
		CategoryIDs:  []uuid.UUID{category.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, 45.0, profile.Price)
	require.Len(t, profile.Categories, 1)
	assert.Equal(t, "Mathematics", profile.Categories[0].Name)
}

func TestTutorCreateProfile_NegativePrice(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: -1})
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}

func TestTutorCreateProfile_Duplicate(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: 30})
	require.NoError(t, err)

	_, err = svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: 35})
	assert.ErrorIs(t, err, errdefs.ErrConflict)
}

func TestTutorUpdateProfile(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{
		Bio:        strPtr("old bio"),
		Price:      30,
		Experience: 3,
	})
	require.NoError(t, err)

	// Only the provided fields change.
	updated, err := svc.UpdateProfile(user.ID, services.UpdateTutorProfileInput{Price: floatPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40.0, updated.Price)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "old bio", *updated.Bio)
	assert.Equal(t, 3, updated.Experience)
}

func TestTutorUpdateProfile_NegativePrice(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: 30})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(user.ID, services.UpdateTutorProfileInput{Price: floatPtr(-5)})
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}

func TestTutorUpdateProfile_ReplacesCategories(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	math := &models.Category{Name: "Mathematics"}
	physics := &models.Category{Name: "Physics"}
	require.NoError(t, db.Categories().Create(math))
	require.NoError(t, db.Categories().Create(physics))

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{
		Price:       30,
		CategoryIDs: []uuid.UUID{math.ID},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, services.UpdateTutorProfileInput{
		CategoryIDs: []uuid.UUID{physics.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Physics", updated.Categories[0].Name)
}

func TestTutorUpdateProfile_NoProfile(t *testing.T) {
	_, svc := newTutorService(t)

	_, err := svc.UpdateProfile(uuid.New(), services.UpdateTutorProfileInput{Price: floatPtr(10)})
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestTutorUpdateAvailability(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: 30})
	require.NoError(t, err)

	availability := json.RawMessage(`{"tue":["14:00-18:00"]}`)
	updated, err := svc.UpdateAvailability(user.ID, availability)
	require.NoError(t, err)
	assert.JSONEq(t, string(availability), string(updated.Availability))
}

func TestTutorList_Filters(t *testing.T) {
	db, svc := newTutorService(t)

	math := &models.Category{Name: "Mathematics"}
	require.NoError(t, db.Categories().Create(math))

	seed := []struct {
		name   string
		email  string
		bio    string
		price  float64
		rating float64
		cats   []uuid.UUID
	}{
		{"Alice Alvarez", "alice@example.com", "algebra and calculus", 20, 4.8, []uuid.UUID{math.ID}},
		{"Bob Brown", "bob@example.com", "essay writing", 50, 3.2, nil},
		{"Carol Chen", "carol@example.com", "piano lessons", 80, 4.9, nil},
	}
	for _, s := range seed {
		user := mustUser(t, db, s.name, s.email)
		profile, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{
			Bio:         strPtr(s.bio),
			Price:       s.price,
			CategoryIDs: s.cats,
		})
		require.NoError(t, err)
		require.NoError(t, db.Tutors().Update(profile.ID, map[string]any{"average_rating": s.rating}))
	}

	list := func(raw map[string]string) *store.Paged[models.TutorProfile] {
		t.Helper()
		spec := store.BuildQuerySpec(raw, store.TutorSortFields)
		page, err := svc.List(spec)
		require.NoError(t, err)
		return page
	}

	// Price range.
	page := list(map[string]string{"minPrice": "30", "maxPrice": "60"})
	require.Len(t, page.Data, 1)
	assert.Equal(t, 50.0, page.Data[0].Price)

	// Minimum rating.
	page = list(map[string]string{"rating": "4.5"})
	assert.Len(t, page.Data, 2)

	// Search hits bio and name.
	page = list(map[string]string{"search": "calculus"})
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alice Alvarez", page.Data[0].User.FullName)

	page = list(map[string]string{"search": "carol"})
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Carol Chen", page.Data[0].User.FullName)

	// Category.
	page = list(map[string]string{"categoryId": math.ID.String()})
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alice Alvarez", page.Data[0].User.FullName)

	// Sort by price ascending.
	page = list(map[string]string{"sortBy": "price", "sortOrder": "asc"})
	require.Len(t, page.Data, 3)
	assert.Equal(t, 20.0, page.Data[0].Price)
	assert.Equal(t, 80.0, page.Data[2].Price)
}

func TestTutorGetMine(t *testing.T) {
	db, svc := newTutorService(t)
	user := mustUser(t, db, "Tom Tutor", "tom@example.com")

	_, err := svc.GetMine(user.ID)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)

	created, err := svc.CreateProfile(user.ID, services.CreateTutorProfileInput{Price: 30})
	require.NoError(t, err)

	got, err := svc.GetMine(user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
