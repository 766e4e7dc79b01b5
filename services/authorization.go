package services

import (
	"fmt"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"github.com/edumatch/tutor_marketplace/models"
	"github.com/edumatch/tutor_marketplace/store"
	"github.com/google/uuid"
)

// requireOwner allows the principal through when it owns the resource or
// carries the admin role. Ownership mismatch is reported as unauthorized, not
// as not-found.
func requireOwner(p models.Principal, ownerID uuid.UUID) error {
	if p.IsAdmin() {
		return nil
	}
	if p.ID != ownerID {
		return fmt.Errorf("you do not own this resource: %w", errdefs.ErrUnauthorized)
	}
	return nil
}

// resolveTutorProfile maps a caller's user id to their tutor profile for
// tutor-scoped ownership checks. Resolution happens at most once per
// operation and is never cached across requests.
func resolveTutorProfile(tutors store.TutorStore, userID uuid.UUID) (*models.TutorProfile, error) {
	profile, err := tutors.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
