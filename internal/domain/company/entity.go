package company

import (
	"time"

	"github.com/google/uuid"
)

// DefaultName is used when a profile has to be created for an account that
// never supplied one.
const DefaultName = "Unnamed company"

type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyName string
	Logo        string
	Address     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProfilePatch struct {
	CompanyName string
	Address     string
	Description string
}

// Apply copies the non-empty fields of patch onto p.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.CompanyName != "" {
		p.CompanyName = patch.CompanyName
	}
	if patch.Address != "" {
		p.Address = patch.Address
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	return p
}
