package services

import (
	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/models"
)

// AuthorizationPolicy holds every access decision as a pure predicate over
// the caller identity and the touched resources. ADMIN short-circuits all
// checks except the ones that are meaningless for admins.
type AuthorizationPolicy struct{}

func NewAuthorizationPolicy() *AuthorizationPolicy {
	return &AuthorizationPolicy{}
}

// EnsureRole permits admins plus any of the listed roles.
func (p *AuthorizationPolicy) EnsureRole(id auth.Identity, roles ...models.UserRole) error {
	if id.IsAdmin() {
		return nil
	}
	for _, role := range roles {
		if id.Role == role {
			return nil
		}
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureSelfOrAdmin guards operations on a user resource.
func (p *AuthorizationPolicy) EnsureSelfOrAdmin(id auth.Identity, userID string) error {
	if id.IsAdmin() || id.UserID == userID {
		return nil
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureCompanyRole guards company-scoped writes: the caller must hold one
// of the roles within that very company.
func (p *AuthorizationPolicy) EnsureCompanyRole(id auth.Identity, companyID string, roles ...models.UserRole) error {
	if id.IsAdmin() {
		return nil
	}
	if !id.SameCompany(companyID) {
		return apperrors.ErrUnauthorizedAction
	}
	return p.EnsureRole(id, roles...)
}

// EnsureEmployerOf guards employer-only company operations.
func (p *AuthorizationPolicy) EnsureEmployerOf(id auth.Identity, company *models.Company) error {
	if id.IsAdmin() {
		return nil
	}
	if company.EmployerID != nil && *company.EmployerID == id.UserID && id.Role == models.RoleEmployer {
		return nil
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureJobManagement guards writes to a posting. Recruiters manage only
// postings they created; employers manage any posting of their company.
func (p *AuthorizationPolicy) EnsureJobManagement(id auth.Identity, job *models.Job) error {
	if id.IsAdmin() {
		return nil
	}
	if !id.SameCompany(job.CompanyID) {
		return apperrors.ErrUnauthorizedAction
	}
	switch id.Role {
	case models.RoleEmployer:
		return nil
	case models.RoleRecruiter:
		if job.CreatedByID == id.UserID {
			return nil
		}
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureApplicationRead guards reads of a single application: the owning
// candidate, company staff of the posting, or an admin.
func (p *AuthorizationPolicy) EnsureApplicationRead(id auth.Identity, app *models.Application) error {
	if id.IsAdmin() || app.CandidateID == id.UserID {
		return nil
	}
	if app.Job != nil && id.SameCompany(app.Job.CompanyID) &&
		(id.Role == models.RoleEmployer || id.Role == models.RoleRecruiter) {
		return nil
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureApplicationReview guards review updates: company staff of the
// posting, or an admin.
func (p *AuthorizationPolicy) EnsureApplicationReview(id auth.Identity, app *models.Application) error {
	if id.IsAdmin() {
		return nil
	}
	if app.Job != nil && id.SameCompany(app.Job.CompanyID) &&
		(id.Role == models.RoleEmployer || id.Role == models.RoleRecruiter) {
		return nil
	}
	return apperrors.ErrUnauthorizedAction
}

// EnsureWithdraw guards withdrawal: only the owning candidate, never an
// admin acting on their behalf.
func (p *AuthorizationPolicy) EnsureWithdraw(id auth.Identity, app *models.Application) error {
	if app.CandidateID == id.UserID {
		return nil
	}
	return apperrors.ErrUnauthorizedAction
}
