package dto

import (
	"time"

	"jobforge_backend/internal/models"
)

// CreateCompanyRequest - company registration by a candidate who becomes its employer
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Industry    string `json:"industry" binding:"required"`
	LogoURL     string `json:"logo_url,omitempty" binding:"omitempty,url"`
}

// UpdateCompanyRequest - company profile edit
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty" binding:"omitempty,url"`
}

// MemberRequest - recruiter appointment, removal and employer handover
type MemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// CompanyDTO - public view of a company
type CompanyDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	EmployerID  *string   `json:"employer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCompanyDTO(company *models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Industry:    company.Industry,
		LogoURL:     company.LogoURL,
		EmployerID:  company.EmployerID,
		CreatedAt:   company.CreatedAt,
	}
}
