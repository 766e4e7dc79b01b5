package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TutorProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Price      float64   `gorm:"type:numeric(10,2);not null;default:0.00" json:"price"`
	Experience int       `gorm:"default:0" json:"experience"`

	// Availability is an opaque schedule blob owned entirely by the tutor.
	Availability json.RawMessage `gorm:"type:jsonb" json:"availability"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`

	Categories []*Category `gorm:"many2many:tutor_categories;" json:"categories"`
	User       User        `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
