package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

type TutorService struct {
	tutors     store.TutorStore
	categories store.CategoryStore
}

func NewTutorService(tutors store.TutorStore, categories store.CategoryStore) *TutorService {
	return &TutorService{tutors: tutors, categories: categories}
}

type CreateTutorProfileInput struct {
	Bio          *string
	Price        float64
	Experience   int
	Availability json.RawMessage
	CategoryIDs  []uuid.UUID
}

type UpdateTutorProfileInput struct {
	Bio         *string
	Price       *float64
	Experience  *int
	CategoryIDs []uuid.UUID
}

// CreateProfile creates the caller's tutor profile. At most one profile may
// exist per user.
func (s *TutorService) CreateProfile(userID uuid.UUID, input CreateTutorProfileInput) (*models.TutorProfile, error) {
	if input.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", errdefs.ErrValidation)
	}

	if _, err := s.tutors.GetByUserID(userID); err == nil {
		return nil, fmt.Errorf("tutor profile already exists: %w", errdefs.ErrConflict)
	} else if !errors.Is(err, errdefs.ErrNotFound) {
		return nil, err
	}

	profile := &models.TutorProfile{
		UserID:       userID,
		Bio:          input.Bio,
		Price:        input.Price,
		Experience:   input.Experience,
		Availability: input.Availability,
	}
	if len(input.CategoryIDs) > 0 {
		categories, err := s.categories.GetByIDs(input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		profile.Categories = categories
	}

	if err := s.tutors.Create(profile); err != nil {
		return nil, err
	}
	return s.tutors.GetByUserID(userID)
}

func (s *TutorService) UpdateProfile(userID uuid.UUID, input UpdateTutorProfileInput) (*models.TutorProfile, error) {
	profile, err := s.tutors.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("price must not be negative: %w", errdefs.ErrValidation)
		}
		updates["price"] = *input.Price
	}
	if input.Experience != nil {
		updates["experience"] = *input.Experience
	}
	if len(updates) > 0 {
		if err := s.tutors.Update(profile.ID, updates); err != nil {
			return nil, err
		}
	}

	if input.CategoryIDs != nil {
		categories, err := s.categories.GetByIDs(input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.tutors.ReplaceCategories(profile, categories); err != nil {
			return nil, err
		}
	}

	return s.tutors.GetByUserID(userID)
}

// UpdateAvailability replaces the availability blob wholesale; its shape is
// owned by the tutor.
func (s *TutorService) UpdateAvailability(userID uuid.UUID, availability json.RawMessage) (*models.TutorProfile, error) {
	profile, err := s.tutors.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tutors.Update(profile.ID, map[string]any{"availability": availability}); err != nil {
		return nil, err
	}
	return s.tutors.GetByUserID(userID)
}

func (s *TutorService) List(spec store.QuerySpec) (*store.Paged[models.TutorProfile], error) {
	profiles, total, err := s.tutors.List(spec)
	if err != nil {
		return nil, err
	}
	return &store.Paged[models.TutorProfile]{
		Data:       profiles,
		Pagination: store.NewPagination(total, spec),
	}, nil
}

func (s *TutorService) GetByID(tutorID uuid.UUID) (*models.TutorProfile, error) {
	return s.tutors.GetByID(tutorID)
}

func (s *TutorService) GetMine(userID uuid.UUID) (*models.TutorProfile, error) {
	return s.tutors.GetByUserID(userID)
}
