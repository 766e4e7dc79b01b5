package services

import (
	"errors"
	"fmt"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

type ReviewService struct {
	reviews  store.ReviewStore
	bookings store.BookingStore
	tutors   store.TutorStore
}

func NewReviewService(reviews store.ReviewStore, bookings store.BookingStore, tutors store.TutorStore) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, tutors: tutors}
}

// Create enforces the precondition chain: booking exists, caller owns it,
// booking is completed, no review exists yet. The tutor id is denormalized
// from the booking at creation time.
func (s *ReviewService) Create(studentID, bookingID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", errdefs.ErrValidation)
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != studentID {
		return nil, fmt.Errorf("you are not the student for this booking: %w", errdefs.ErrUnauthorized)
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("you can only review completed sessions: %w", errdefs.ErrInvalidState)
	}

	if _, err := s.reviews.GetByBookingID(bookingID); err == nil {
		return nil, fmt.Errorf("review already submitted for this booking: %w", errdefs.ErrConflict)
	} else if !errors.Is(err, errdefs.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		BookingID: bookingID,
		StudentID: studentID,
		TutorID:   booking.TutorID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetByTutor is public: anyone may list a tutor's reviews.
func (s *ReviewService) GetByTutor(tutorID uuid.UUID, spec store.QuerySpec) (*store.Paged[models.Review], error) {
	return s.list(store.ReviewFilter{TutorID: tutorID}, spec)
}

func (s *ReviewService) GetMine(tutorUserID uuid.UUID, spec store.QuerySpec) (*store.Paged[models.Review], error) {
	profile, err := resolveTutorProfile(s.tutors, tutorUserID)
	if err != nil {
		return nil, err
	}
	return s.list(store.ReviewFilter{TutorID: profile.ID}, spec)
}

func (s *ReviewService) GetAll(spec store.QuerySpec) (*store.Paged[models.Review], error) {
	return s.list(store.ReviewFilter{}, spec)
}

// GetByID applies the same visibility matrix as bookings.
func (s *ReviewService) GetByID(reviewID uuid.UUID, p models.Principal) (*models.Review, error) {
	review, err := s.reviews.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	switch p.Role {
	case models.RoleAdmin:
		return review, nil
	case models.RoleStudent:
		if review.StudentID != p.ID {
			return nil, fmt.Errorf("this is not your review: %w", errdefs.ErrUnauthorized)
		}
		return review, nil
	case models.RoleTutor:
		profile, err := resolveTutorProfile(s.tutors, p.ID)
		if err != nil {
			return nil, err
		}
		if review.TutorID != profile.ID {
			return nil, fmt.Errorf("this is not your review: %w", errdefs.ErrUnauthorized)
		}
		return review, nil
	default:
		return nil, errdefs.ErrUnauthorized
	}
}

func (s *ReviewService) list(filter store.ReviewFilter, spec store.QuerySpec) (*store.Paged[models.Review], error) {
	reviews, total, err := s.reviews.List(filter, spec)
	if err != nil {
		return nil, err
	}
	return &store.Paged[models.Review]{
		Data:       reviews,
		Pagination: store.NewPagination(total, spec),
	}, nil
}
