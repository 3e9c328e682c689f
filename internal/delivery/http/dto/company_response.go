package dto

import (
	"time"

	"careerlink/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	CompanyName string    `json:"companyName"`
	Logo        string    `json:"logo"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCompanyProfileResponse(p company.Profile) CompanyProfileResponse {
	return CompanyProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Logo:        p.Logo,
		Address:     p.Address,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
