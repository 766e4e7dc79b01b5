package store

import (
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormCategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *GormCategoryStore {
	return &GormCategoryStore{db: db}
}

func (s *GormCategoryStore) Create(category *models.Category) error {
	return wrapErr(s.db.Create(category).Error)
}

func (s *GormCategoryStore) Update(category *models.Category) error {
	return wrapErr(s.db.Save(category).Error)
}

func (s *GormCategoryStore) Delete(id uuid.UUID) error {
	return wrapErr(s.db.Delete(&models.Category{}, "id = ?", id).Error)
}

func (s *GormCategoryStore) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

func (s *GormCategoryStore) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "name = ?", name).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

func (s *GormCategoryStore) GetByIDs(ids []uuid.UUID) ([]*models.Category, error) {
	var categories []*models.Category
	if err := s.db.Find(&categories, "id IN ?", ids).Error; err != nil {
		return nil, wrapErr(err)
	}
	return categories, nil
}

func (s *GormCategoryStore) List(spec QuerySpec) ([]models.Category, int64, error) {
	q := s.db.Model(&models.Category{})
	if spec.Search != "" {
		pattern := "%" + spec.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err)
	}

	var categories []models.Category
	err := q.Order(orderClause("categories", spec)).
		Limit(spec.Limit).
		Offset(spec.Skip).
		Find(&categories).Error
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	return categories, total, nil
}

func (s *GormCategoryStore) CountTutorsUsing(id uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Table("tutor_categories").Where("category_id = ?", id).Count(&count).Error
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}
