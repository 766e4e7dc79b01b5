package store

import (
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormBookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

func (s *GormBookingStore) Create(booking *models.Booking) error {
	return wrapErr(s.db.Create(booking).Error)
}

func (s *GormBookingStore) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("Student").Preload("Tutor.User").First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &booking, nil
}

func (s *GormBookingStore) UpdateStatusIfConfirmed(id uuid.UUID, next string) (bool, error) {
	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingStatusConfirmed).
		Update("status", next)
	if res.Error != nil {
		return false, wrapErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormBookingStore) List(filter BookingFilter, spec QuerySpec) ([]models.Booking, int64, error) {
	q := s.db.Model(&models.Booking{})
	if filter.StudentID != uuid.Nil {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.TutorID != uuid.Nil {
		q = q.Where("tutor_id = ?", filter.TutorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err)
	}

	var bookings []models.Booking
	err := q.Order(orderClause("bookings", spec)).
		Limit(spec.Limit).
		Offset(spec.Skip).
		Preload("Student").
		Preload("Tutor.User").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	return bookings, total, nil
}
