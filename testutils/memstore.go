// Package testutils provides an in-memory implementation of the store
// interfaces so service behavior can be tested without a database. The
// implementation honors the same contract as the GORM store, including the
// atomic conditional status update bookings rely on.
package testutils

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

type MemDB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	categories map[uuid.UUID]*models.Category
	tutors     map[uuid.UUID]*models.TutorProfile
	bookings   map[uuid.UUID]*models.Booking
	reviews    map[uuid.UUID]*models.Review
}

func NewMemDB() *MemDB {
	return &MemDB{
		users:      map[uuid.UUID]*models.User{},
		categories: map[uuid.UUID]*models.Category{},
		tutors:     map[uuid.UUID]*models.TutorProfile{},
		bookings:   map[uuid.UUID]*models.Booking{},
		reviews:    map[uuid.UUID]*models.Review{},
	}
}

func (d *MemDB) Users() store.UserStore          { return &memUserStore{d} }
func (d *MemDB) Categories() store.CategoryStore { return &memCategoryStore{d} }
func (d *MemDB) Tutors() store.TutorStore        { return &memTutorStore{d} }
func (d *MemDB) Bookings() store.BookingStore    { return &memBookingStore{d} }
func (d *MemDB) Reviews() store.ReviewStore      { return &memReviewStore{d} }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func paginate[T any](items []T, spec store.QuerySpec) ([]T, int64) {
	total := int64(len(items))
	if spec.Skip >= len(items) {
		return []T{}, total
	}
	end := spec.Skip + spec.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[spec.Skip:end], total
}

// orderBy applies the whitelisted sort with id as a secondary key, matching
// the SQL store's deterministic-pagination behavior.
func orderBy[T any](items []T, spec store.QuerySpec, key func(T) string, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a == b {
			return id(items[i]).String() < id(items[j]).String()
		}
		if spec.SortOrder == "asc" {
			return a < b
		}
		return a > b
	})
}

// sortTimeLayout is fixed-width so formatted timestamps compare correctly
// as strings; RFC3339Nano trims trailing zeros and would not.
const sortTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── users ───────────────────────────────────────────────────────────

type memUserStore struct{ db *MemDB }

func (s *memUserStore) Create(user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return errdefs.ErrConflict
		}
	}
	ensureID(&user.ID)
	user.CreatedAt = time.Now()
	cp := *user
	s.db.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, errdefs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errdefs.ErrNotFound
}

// ── categories ──────────────────────────────────────────────────────

type memCategoryStore struct{ db *MemDB }

func (s *memCategoryStore) Create(category *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.categories {
		if c.Name == category.Name {
			return errdefs.ErrConflict
		}
	}
	ensureID(&category.ID)
	category.CreatedAt = time.Now()
	cp := *category
	s.db.categories[category.ID] = &cp
	return nil
}

func (s *memCategoryStore) Update(category *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.categories[category.ID]; !ok {
		return errdefs.ErrNotFound
	}
	cp := *category
	s.db.categories[category.ID] = &cp
	return nil
}

func (s *memCategoryStore) Delete(id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.categories, id)
	return nil
}

func (s *memCategoryStore) GetByID(id uuid.UUID) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	c, ok := s.db.categories[id]
	if !ok {
		return nil, errdefs.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memCategoryStore) GetByName(name string) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, c := range s.db.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errdefs.ErrNotFound
}

func (s *memCategoryStore) GetByIDs(ids []uuid.UUID) ([]*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*models.Category
	for _, id := range ids {
		if c, ok := s.db.categories[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memCategoryStore) List(spec store.QuerySpec) ([]models.Category, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Category
	for _, c := range s.db.categories {
		if spec.Search != "" {
			desc := ""
			if c.Description != nil {
				desc = *c.Description
			}
			if !containsFold(c.Name, spec.Search) && !containsFold(desc, spec.Search) {
				continue
			}
		}
		matched = append(matched, *c)
	}
	orderBy(matched, spec, func(c models.Category) string {
		if spec.SortBy == "name" {
			return c.Name
		}
		return c.CreatedAt.Format(sortTimeLayout)
	}, func(c models.Category) uuid.UUID { return c.ID })
	page, total := paginate(matched, spec)
	return page, total, nil
}

func (s *memCategoryStore) CountTutorsUsing(id uuid.UUID) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for _, t := range s.db.tutors {
		for _, c := range t.Categories {
			if c.ID == id {
				count++
				break
			}
		}
	}
	return count, nil
}

// ── tutors ──────────────────────────────────────────────────────────

type memTutorStore struct{ db *MemDB }

func (s *memTutorStore) Create(profile *models.TutorProfile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.tutors {
		if t.UserID == profile.UserID {
			return errdefs.ErrConflict
		}
	}
	ensureID(&profile.ID)
	profile.CreatedAt = time.Now()
	if u, ok := s.db.users[profile.UserID]; ok {
		profile.User = *u
	}
	cp := *profile
	s.db.tutors[profile.ID] = &cp
	return nil
}

func (s *memTutorStore) Update(id uuid.UUID, updates map[string]any) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tutors[id]
	if !ok {
		return errdefs.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "bio":
			bio := value.(string)
			t.Bio = &bio
		case "price":
			t.Price = value.(float64)
		case "experience":
			t.Experience = value.(int)
		case "availability":
			t.Availability = value.(json.RawMessage)
		case "average_rating":
			t.AverageRating = value.(float64)
		}
	}
	return nil
}

func (s *memTutorStore) ReplaceCategories(profile *models.TutorProfile, categories []*models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tutors[profile.ID]
	if !ok {
		return errdefs.ErrNotFound
	}
	t.Categories = categories
	return nil
}

func (s *memTutorStore) GetByID(id uuid.UUID) (*models.TutorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tutors[id]
	if !ok {
		return nil, errdefs.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memTutorStore) GetByUserID(userID uuid.UUID) (*models.TutorProfile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.tutors {
		if t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errdefs.ErrNotFound
}

func (s *memTutorStore) List(spec store.QuerySpec) ([]models.TutorProfile, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.TutorProfile
	for _, t := range s.db.tutors {
		if spec.Search != "" {
			bio := ""
			if t.Bio != nil {
				bio = *t.Bio
			}
			if !containsFold(bio, spec.Search) && !containsFold(t.User.FullName, spec.Search) {
				continue
			}
		}
		if spec.CategoryID != nil && !hasCategory(t, *spec.CategoryID) {
			continue
		}
		if spec.MinPrice != nil && t.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && t.Price > *spec.MaxPrice {
			continue
		}
		if spec.MinRating != nil && t.AverageRating < *spec.MinRating {
			continue
		}
		matched = append(matched, *t)
	}
	orderBy(matched, spec, func(t models.TutorProfile) string {
		switch spec.SortBy {
		case "price":
			return fmt.Sprintf("%020.2f", t.Price)
		case "average_rating":
			return fmt.Sprintf("%020.2f", t.AverageRating)
		case "experience":
			return fmt.Sprintf("%020d", t.Experience)
		default:
			return t.CreatedAt.Format(sortTimeLayout)
		}
	}, func(t models.TutorProfile) uuid.UUID { return t.ID })
	page, total := paginate(matched, spec)
	return page, total, nil
}

func hasCategory(t *models.TutorProfile, id uuid.UUID) bool {
	for _, c := range t.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ── bookings ────────────────────────────────────────────────────────

type memBookingStore struct{ db *MemDB }

func (s *memBookingStore) Create(booking *models.Booking) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	ensureID(&booking.ID)
	booking.CreatedAt = time.Now()
	if u, ok := s.db.users[booking.StudentID]; ok {
		booking.Student = *u
	}
	if t, ok := s.db.tutors[booking.TutorID]; ok {
		booking.Tutor = *t
	}
	cp := *booking
	s.db.bookings[booking.ID] = &cp
	return nil
}

func (s *memBookingStore) GetByID(id uuid.UUID) (*models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	b, ok := s.db.bookings[id]
	if !ok {
		return nil, errdefs.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memBookingStore) UpdateStatusIfConfirmed(id uuid.UUID, next string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	b, ok := s.db.bookings[id]
	if !ok {
		return false, nil
	}
	if b.Status != models.BookingStatusConfirmed {
		return false, nil
	}
	b.Status = next
	return true, nil
}

func (s *memBookingStore) List(filter store.BookingFilter, spec store.QuerySpec) ([]models.Booking, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Booking
	for _, b := range s.db.bookings {
		if filter.StudentID != uuid.Nil && b.StudentID != filter.StudentID {
			continue
		}
		if filter.TutorID != uuid.Nil && b.TutorID != filter.TutorID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, *b)
	}
	orderBy(matched, spec, func(b models.Booking) string {
		switch spec.SortBy {
		case "date":
			return b.Date.Format(sortTimeLayout)
		case "status":
			return b.Status
		default:
			return b.CreatedAt.Format(sortTimeLayout)
		}
	}, func(b models.Booking) uuid.UUID { return b.ID })
	page, total := paginate(matched, spec)
	return page, total, nil
}

// ── reviews ─────────────────────────────────────────────────────────

type memReviewStore struct{ db *MemDB }

func (s *memReviewStore) Create(review *models.Review) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.reviews {
		if r.BookingID == review.BookingID {
			return errdefs.ErrConflict
		}
	}
	ensureID(&review.ID)
	review.CreatedAt = time.Now()
	cp := *review
	s.db.reviews[review.ID] = &cp

	// Mean recompute, mirroring the SQL store's transaction.
	var sum, n float64
	for _, r := range s.db.reviews {
		if r.TutorID == review.TutorID {
			sum += float64(r.Rating)
			n++
		}
	}
	if t, ok := s.db.tutors[review.TutorID]; ok && n > 0 {
		t.AverageRating = sum / n
	}
	return nil
}

func (s *memReviewStore) GetByID(id uuid.UUID) (*models.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.reviews[id]
	if !ok {
		return nil, errdefs.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memReviewStore) GetByBookingID(bookingID uuid.UUID) (*models.Review, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.reviews {
		if r.BookingID == bookingID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errdefs.ErrNotFound
}

func (s *memReviewStore) List(filter store.ReviewFilter, spec store.QuerySpec) ([]models.Review, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matched []models.Review
	for _, r := range s.db.reviews {
		if filter.StudentID != uuid.Nil && r.StudentID != filter.StudentID {
			continue
		}
		if filter.TutorID != uuid.Nil && r.TutorID != filter.TutorID {
			continue
		}
		matched = append(matched, *r)
	}
	orderBy(matched, spec, func(r models.Review) string {
		if spec.SortBy == "rating" {
			return fmt.Sprintf("%02d", r.Rating)
		}
		return r.CreatedAt.Format(sortTimeLayout)
	}, func(r models.Review) uuid.UUID { return r.ID })
	page, total := paginate(matched, spec)
	return page, total, nil
}
