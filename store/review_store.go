package store

import (
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *GormReviewStore {
	return &GormReviewStore{db: db}
}

// Create persists the review and recomputes the tutor's mean rating in one
// transaction. The unique index on booking_id is the last line of defence
// against concurrent duplicate submissions.
func (s *GormReviewStore) Create(review *models.Review) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		err := tx.Model(&models.Review{}).
			Where("tutor_id = ?", review.TutorID).
			Select("avg(rating) as avg").
			Scan(&result).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.TutorProfile{}).
			Where("id = ?", review.TutorID).
			Update("average_rating", result.Avg).Error
	})
	return wrapErr(err)
}

func (s *GormReviewStore) GetByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := s.db.Preload("Student", studentProjection).
		Preload("Tutor.User").
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &review, nil
}

func (s *GormReviewStore) GetByBookingID(bookingID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "booking_id = ?", bookingID).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &review, nil
}

func (s *GormReviewStore) List(filter ReviewFilter, spec QuerySpec) ([]models.Review, int64, error) {
	q := s.db.Model(&models.Review{})
	if filter.StudentID != uuid.Nil {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.TutorID != uuid.Nil {
		q = q.Where("tutor_id = ?", filter.TutorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err)
	}

	var reviews []models.Review
	err := q.Order(orderClause("reviews", spec)).
		Limit(spec.Limit).
		Offset(spec.Skip).
		Preload("Student", studentProjection).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	return reviews, total, nil
}

// studentProjection keeps review listings from leaking anything beyond the
// reviewer's public fields.
func studentProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id, full_name, profile_picture_url")
}
