package models

import "github.com/google/uuid"

// Principal is the authenticated caller as verified by the JWT middleware.
type Principal struct {
	ID     uuid.UUID
	Role   string
	Status string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsActive() bool {
	return p.Status == UserStatusActive
}
