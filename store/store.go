package store

import (
	"math"

	"github.com/edumatch/tutor_marketplace/models"
	"github.com/google/uuid"
)

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Paged is the envelope every list operation returns.
type Paged[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewPagination(total int64, spec QuerySpec) Pagination {
	return Pagination{
		Total:      total,
		Page:       spec.Page,
		Limit:      spec.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(spec.Limit))),
	}
}

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type CategoryStore interface {
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	GetByIDs(ids []uuid.UUID) ([]*models.Category, error)
	List(spec QuerySpec) ([]models.Category, int64, error)
	CountTutorsUsing(id uuid.UUID) (int64, error)
}

type TutorStore interface {
	Create(profile *models.TutorProfile) error
	Update(id uuid.UUID, updates map[string]any) error
	ReplaceCategories(profile *models.TutorProfile, categories []*models.Category) error
	GetByID(id uuid.UUID) (*models.TutorProfile, error)
	GetByUserID(userID uuid.UUID) (*models.TutorProfile, error)
	List(spec QuerySpec) ([]models.TutorProfile, int64, error)
}

// BookingFilter is the role/ownership-derived base filter for booking lists.
// Zero values mean unconstrained.
type BookingFilter struct {
	StudentID uuid.UUID
	TutorID   uuid.UUID
	Status    string
}

type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(id uuid.UUID) (*models.Booking, error)
	// UpdateStatusIfConfirmed transitions the booking to next only when its
	// current status is confirmed, reporting whether a row changed. This is
	// the atomic guard the state machine depends on under concurrent calls.
	UpdateStatusIfConfirmed(id uuid.UUID, next string) (bool, error)
	List(filter BookingFilter, spec QuerySpec) ([]models.Booking, int64, error)
}

type ReviewFilter struct {
	StudentID uuid.UUID
	TutorID   uuid.UUID
}

type ReviewStore interface {
	// Create persists the review and recomputes the tutor's average rating
	// in the same transaction.
	Create(review *models.Review) error
	GetByID(id uuid.UUID) (*models.Review, error)
	GetByBookingID(bookingID uuid.UUID) (*models.Review, error)
	List(filter ReviewFilter, spec QuerySpec) ([]models.Review, int64, error)
}
