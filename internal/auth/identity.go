package auth

import "jobforge_backend/internal/models"

// Identity is the authenticated caller as established by the middleware.
// Handlers and services never look at the raw token.
type Identity struct {
	UserID    string
	Email     string
	Role      models.UserRole
	CompanyID *string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// SameCompany reports whether the identity belongs to the given company.
func (i Identity) SameCompany(companyID string) bool {
	return i.CompanyID != nil && *i.CompanyID == companyID
}
