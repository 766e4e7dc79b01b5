package services

import (
	"errors"
	"fmt"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

type CategoryService struct {
	categories store.CategoryStore
}

func NewCategoryService(categories store.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
}

func (s *CategoryService) List(spec store.QuerySpec) (*store.Paged[models.Category], error) {
	categories, total, err := s.categories.List(spec)
	if err != nil {
		return nil, err
	}
	return &store.Paged[models.Category]{
		Data:       categories,
		Pagination: store.NewPagination(total, spec),
	}, nil
}

func (s *CategoryService) GetByID(id uuid.UUID) (*models.Category, error) {
	return s.categories.GetByID(id)
}

func (s *CategoryService) Create(name string, description, icon *string) (*models.Category, error) {
	if err := s.requireUniqueName(name); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		Icon:        icon,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(id uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		if err := s.requireUniqueName(*input.Name); err != nil {
			return nil, err
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}

	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless any tutor profile still references it.
func (s *CategoryService) Delete(id uuid.UUID) error {
	if _, err := s.categories.GetByID(id); err != nil {
		return err
	}

	count, err := s.categories.CountTutorsUsing(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category: %d tutor(s) are using this category: %w", count, errdefs.ErrConflict)
	}

	return s.categories.Delete(id)
}

func (s *CategoryService) requireUniqueName(name string) error {
	if _, err := s.categories.GetByName(name); err == nil {
		return fmt.Errorf("category with this name already exists: %w", errdefs.ErrConflict)
	} else if !errors.Is(err, errdefs.ErrNotFound) {
		return err
	}
	return nil
}
