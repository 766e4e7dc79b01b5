package store

import (
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormTutorStore struct {
	db *gorm.DB
}

func NewTutorStore(db *gorm.DB) *GormTutorStore {
	return &GormTutorStore{db: db}
}

func (s *GormTutorStore) Create(profile *models.TutorProfile) error {
	return wrapErr(s.db.Create(profile).Error)
}

func (s *GormTutorStore) Update(id uuid.UUID, updates map[string]any) error {
	return wrapErr(s.db.Model(&models.TutorProfile{}).Where("id = ?", id).Updates(updates).Error)
}

func (s *GormTutorStore) ReplaceCategories(profile *models.TutorProfile, categories []*models.Category) error {
	return wrapErr(s.db.Model(profile).Association("Categories").Replace(categories))
}

func (s *GormTutorStore) GetByID(id uuid.UUID) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	err := s.db.Preload("User").Preload("Categories").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &profile, nil
}

func (s *GormTutorStore) GetByUserID(userID uuid.UUID) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	err := s.db.Preload("User").Preload("Categories").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &profile, nil
}

func (s *GormTutorStore) List(spec QuerySpec) ([]models.TutorProfile, int64, error) {
	q := s.db.Model(&models.TutorProfile{}).
		Joins("JOIN users ON users.id = tutor_profiles.user_id")

	if spec.Search != "" {
		pattern := "%" + spec.Search + "%"
		q = q.Where("tutor_profiles.bio ILIKE ? OR users.full_name ILIKE ?", pattern, pattern)
	}
	if spec.CategoryID != nil {
		q = q.Joins("JOIN tutor_categories ON tutor_categories.tutor_profile_id = tutor_profiles.id").
			Where("tutor_categories.category_id = ?", *spec.CategoryID)
	}
	if spec.MinPrice != nil {
		q = q.Where("tutor_profiles.price >= ?", *spec.MinPrice)
	}
	if spec.MaxPrice != nil {
		q = q.Where("tutor_profiles.price <= ?", *spec.MaxPrice)
	}
	if spec.MinRating != nil {
		q = q.Where("tutor_profiles.average_rating >= ?", *spec.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err)
	}

	var profiles []models.TutorProfile
	err := q.Order(orderClause("tutor_profiles", spec)).
		Limit(spec.Limit).
		Offset(spec.Skip).
		Preload("User").
		Preload("Categories").
		Find(&profiles).Error
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	return profiles, total, nil
}
