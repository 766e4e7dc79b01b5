package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;unique" json:"booking_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:text" json:"comment"`

	Student User         `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   TutorProfile `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
