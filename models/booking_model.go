package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null" json:"tutor_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Status    string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	Student User         `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   TutorProfile `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
