package services

import (
	"fmt"
	"time"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

type BookingService struct {
	bookings store.BookingStore
	tutors   store.TutorStore
}

func NewBookingService(bookings store.BookingStore, tutors store.TutorStore) *BookingService {
	return &BookingService{bookings: bookings, tutors: tutors}
}

// Create opens a new booking in the confirmed state. The tutor must exist;
// no slot-overlap check is performed.
func (s *BookingService) Create(studentID, tutorID uuid.UUID, date time.Time) (*models.Booking, error) {
	if _, err := s.tutors.GetByID(tutorID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		StudentID: studentID,
		TutorID:   tutorID,
		Date:      date,
		Status:    models.BookingStatusConfirmed,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(booking.ID)
}

// Cancel moves a confirmed booking to cancelled. Only the owning student may
// cancel, and cancelled/completed are terminal.
func (s *BookingService) Cancel(bookingID, studentID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.StudentID != studentID {
		return nil, fmt.Errorf("you are not the student for this booking: %w", errdefs.ErrUnauthorized)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("only confirmed bookings can be cancelled: %w", errdefs.ErrInvalidState)
	}

	ok, err := s.bookings.UpdateStatusIfConfirmed(bookingID, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race against a concurrent cancel/complete.
		return nil, fmt.Errorf("only confirmed bookings can be cancelled: %w", errdefs.ErrInvalidState)
	}

	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// Complete marks a confirmed booking as completed on behalf of the owning
// tutor, identified by their user id.
func (s *BookingService) Complete(bookingID, tutorUserID uuid.UUID) (*models.Booking, error) {
	profile, err := resolveTutorProfile(s.tutors, tutorUserID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.TutorID != profile.ID {
		return nil, fmt.Errorf("you are not the tutor for this booking: %w", errdefs.ErrUnauthorized)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("only confirmed bookings can be completed: %w", errdefs.ErrInvalidState)
	}

	ok, err := s.bookings.UpdateStatusIfConfirmed(bookingID, models.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("only confirmed bookings can be completed: %w", errdefs.ErrInvalidState)
	}

	booking.Status = models.BookingStatusCompleted
	return booking, nil
}

// GetByID applies the shared visibility matrix: admins see any booking,
// students their own, tutors those on their own profile.
func (s *BookingService) GetByID(bookingID uuid.UUID, p models.Principal) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	switch p.Role {
	case models.RoleAdmin:
		return booking, nil
	case models.RoleStudent:
		if booking.StudentID != p.ID {
			return nil, fmt.Errorf("this is not your booking: %w", errdefs.ErrUnauthorized)
		}
		return booking, nil
	case models.RoleTutor:
		profile, err := resolveTutorProfile(s.tutors, p.ID)
		if err != nil {
			return nil, err
		}
		if booking.TutorID != profile.ID {
			return nil, fmt.Errorf("this is not your booking: %w", errdefs.ErrUnauthorized)
		}
		return booking, nil
	default:
		return nil, errdefs.ErrUnauthorized
	}
}

func (s *BookingService) ListForStudent(studentID uuid.UUID, spec store.QuerySpec) (*store.Paged[models.Booking], error) {
	filter := store.BookingFilter{StudentID: studentID, Status: spec.Status}
	return s.list(filter, spec)
}

func (s *BookingService) ListForTutor(tutorUserID uuid.UUID, spec store.QuerySpec) (*store.Paged[models.Booking], error) {
	profile, err := resolveTutorProfile(s.tutors, tutorUserID)
	if err != nil {
		return nil, err
	}
	return s.list(store.BookingFilter{TutorID: profile.ID}, spec)
}

func (s *BookingService) ListAll(spec store.QuerySpec) (*store.Paged[models.Booking], error) {
	return s.list(store.BookingFilter{}, spec)
}

func (s *BookingService) list(filter store.BookingFilter, spec store.QuerySpec) (*store.Paged[models.Booking], error) {
	bookings, total, err := s.bookings.List(filter, spec)
	if err != nil {
		return nil, err
	}
	return &store.Paged[models.Booking]{
		Data:       bookings,
		Pagination: store.NewPagination(total, spec),
	}, nil
}
