package services_test

import (
	"testing"
	"time"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/services"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	*bookingFixture
	reviews *services.ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	f := newBookingFixture(t)
	return &reviewFixture{
		bookingFixture: f,
		reviews:        services.NewReviewService(f.db.Reviews(), f.db.Bookings(), f.db.Tutors()),
	}
}

// mustCompleteBooking books a session and walks it to completed so it is
// reviewable.
func (f *reviewFixture) mustCompleteBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking := f.mustBook(t)
	completed, err := f.svc.Complete(booking.ID, f.tutor.ID)
	require.NoError(t, err)
	return completed
}

func TestReviewCreate(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	comment := "great session"
	review, err := f.reviews.Create(f.student.ID, booking.ID, 5, &comment)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, review.BookingID)
	assert.Equal(t, f.profile.ID, review.TutorID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewCreate_RatingBounds(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := f.reviews.Create(f.student.ID, booking.ID, rating, nil)
		assert.ErrorIs(t, err, errdefs.ErrValidation, "rating=%d", rating)
	}

	for _, rating := range []int{1, 5} {
		b := f.mustCompleteBooking(t)
		_, err := f.reviews.Create(f.student.ID, b.ID, rating, nil)
		assert.NoError(t, err, "rating=%d", rating)
	}
}

func TestReviewCreate_BookingNotFound(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.Create(f.student.ID, uuid.New(), 4, nil)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestReviewCreate_NotOwner(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	_, err := f.reviews.Create(uuid.New(), booking.ID, 4, nil)
	assert.ErrorIs(t, err, errdefs.ErrUnauthorized)
}

func TestReviewCreate_OnlyCompletedSessions(t *testing.T) {
	f := newReviewFixture(t)

	booking := f.mustBook(t)
	_, err := f.reviews.Create(f.student.ID, booking.ID, 4, nil)
	assert.ErrorIs(t, err, errdefs.ErrInvalidState)

	_, err = f.svc.Cancel(booking.ID, f.student.ID)
	require.NoError(t, err)
	_, err = f.reviews.Create(f.student.ID, booking.ID, 4, nil)
	assert.ErrorIs(t, err, errdefs.ErrInvalidState)
}

func TestReviewCreate_DuplicateBooking(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	_, err := f.reviews.Create(f.student.ID, booking.ID, 4, nil)
	require.NoError(t, err)

	_, err = f.reviews.Create(f.student.ID, booking.ID, 5, nil)
	assert.ErrorIs(t, err, errdefs.ErrConflict)
}

func TestReviewCreate_RecomputesAverageRating(t *testing.T) {
	f := newReviewFixture(t)

	b1 := f.mustCompleteBooking(t)
	b2 := f.mustCompleteBooking(t)

	_, err := f.reviews.Create(f.student.ID, b1.ID, 5, nil)
	require.NoError(t, err)

	profile, err := f.db.Tutors().GetByID(f.profile.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, profile.AverageRating, 0.001)

	_, err = f.reviews.Create(f.student.ID, b2.ID, 2, nil)
	require.NoError(t, err)

	profile, err = f.db.Tutors().GetByID(f.profile.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, profile.AverageRating, 0.001)
}

func TestReviewGetByTutor(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	_, err := f.reviews.Create(f.student.ID, booking.ID, 4, nil)
	require.NoError(t, err)

	spec := store.BuildQuerySpec(map[string]string{}, store.ReviewSortFields)
	page, err := f.reviews.GetByTutor(f.profile.ID, spec)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, booking.ID, page.Data[0].BookingID)

	// Another tutor has none.
	page, err = f.reviews.GetByTutor(uuid.New(), spec)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Pagination.Total)
}

func TestReviewGetByID_Visibility(t *testing.T) {
	f := newReviewFixture(t)
	booking := f.mustCompleteBooking(t)

	review, err := f.reviews.Create(f.student.ID, booking.ID, 4, nil)
	require.NoError(t, err)

	_, err = f.reviews.GetByID(review.ID, models.Principal{ID: uuid.New(), Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = f.reviews.GetByID(review.ID, models.Principal{ID: f.student.ID, Role: models.RoleStudent})
	assert.NoError(t, err)

	_, err = f.reviews.GetByID(review.ID, models.Principal{ID: uuid.New(), Role: models.RoleStudent})
	assert.ErrorIs(t, err, errdefs.ErrUnauthorized)

	_, err = f.reviews.GetByID(review.ID, models.Principal{ID: f.tutor.ID, Role: models.RoleTutor})
	assert.NoError(t, err)
}

func TestReviewGetMine_SortedByRating(t *testing.T) {
	f := newReviewFixture(t)

	ratings := []int{3, 5, 1}
	for _, r := range ratings {
		booking := f.mustCompleteBooking(t)
		_, err := f.reviews.Create(f.student.ID, booking.ID, r, nil)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	spec := store.BuildQuerySpec(map[string]string{"sortBy": "rating", "sortOrder": "asc"}, store.ReviewSortFields)
	page, err := f.reviews.GetMine(f.tutor.ID, spec)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, 1, page.Data[0].Rating)
	assert.Equal(t, 3, page.Data[1].Rating)
	assert.Equal(t, 5, page.Data[2].Rating)
}
