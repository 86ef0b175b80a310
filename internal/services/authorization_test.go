package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/models"
)

func ident(role models.UserRole, companyID string) auth.Identity {
	id := auth.Identity{UserID: "user-1", Role: role}
	if companyID != "" {
		id.CompanyID = &companyID
	}
	return id
}

func TestEnsureRole(t *testing.T) {
	p := NewAuthorizationPolicy()

	assert.NoError(t, p.EnsureRole(ident(models.RoleEmployer, ""), models.RoleEmployer, models.RoleRecruiter))
	assert.NoError(t, p.EnsureRole(ident(models.RoleRecruiter, ""), models.RoleEmployer, models.RoleRecruiter))
	assert.Error(t, p.EnsureRole(ident(models.RoleCandidate, ""), models.RoleEmployer, models.RoleRecruiter))

	// Admin passes any role gate.
	assert.NoError(t, p.EnsureRole(ident(models.RoleAdmin, ""), models.RoleEmployer))
	assert.NoError(t, p.EnsureRole(ident(models.RoleAdmin, "")))
}

func TestEnsureSelfOrAdmin(t *testing.T) {
	p := NewAuthorizationPolicy()

	assert.NoError(t, p.EnsureSelfOrAdmin(ident(models.RoleCandidate, ""), "user-1"))
	assert.Error(t, p.EnsureSelfOrAdmin(ident(models.RoleCandidate, ""), "user-2"))
	assert.NoError(t, p.EnsureSelfOrAdmin(ident(models.RoleAdmin, ""), "user-2"))
}

func TestEnsureCompanyRole(t *testing.T) {
	p := NewAuthorizationPolicy()

	assert.NoError(t, p.EnsureCompanyRole(ident(models.RoleEmployer, "c1"), "c1", models.RoleEmployer))
	assert.Error(t, p.EnsureCompanyRole(ident(models.RoleEmployer, "c2"), "c1", models.RoleEmployer))
	assert.Error(t, p.EnsureCompanyRole(ident(models.RoleRecruiter, "c1"), "c1", models.RoleEmployer))
	assert.Error(t, p.EnsureCompanyRole(ident(models.RoleCandidate, ""), "c1", models.RoleEmployer))
	assert.NoError(t, p.EnsureCompanyRole(ident(models.RoleAdmin, ""), "c1", models.RoleEmployer))
}

func TestEnsureJobManagement(t *testing.T) {
	p := NewAuthorizationPolicy()
	job := &models.Job{CompanyID: "c1", CreatedByID: "recruiter-1"}
	job.ID = "j1"

	employer := auth.Identity{UserID: "employer-1", Role: models.RoleEmployer}
	companyID := "c1"
	employer.CompanyID = &companyID
	assert.NoError(t, p.EnsureJobManagement(employer, job))

	owner := auth.Identity{UserID: "recruiter-1", Role: models.RoleRecruiter, CompanyID: &companyID}
	assert.NoError(t, p.EnsureJobManagement(owner, job))

	colleague := auth.Identity{UserID: "recruiter-2", Role: models.RoleRecruiter, CompanyID: &companyID}
	assert.Error(t, p.EnsureJobManagement(colleague, job))

	otherCompany := "c2"
	foreignEmployer := auth.Identity{UserID: "employer-2", Role: models.RoleEmployer, CompanyID: &otherCompany}
	assert.Error(t, p.EnsureJobManagement(foreignEmployer, job))

	admin := auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}
	assert.NoError(t, p.EnsureJobManagement(admin, job))
}

func TestEnsureWithdrawNoAdminOverride(t *testing.T) {
	p := NewAuthorizationPolicy()
	app := &models.Application{CandidateID: "cand-1"}

	assert.NoError(t, p.EnsureWithdraw(auth.Identity{UserID: "cand-1", Role: models.RoleCandidate}, app))
	assert.Error(t, p.EnsureWithdraw(auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}, app))
	assert.Error(t, p.EnsureWithdraw(auth.Identity{UserID: "cand-2", Role: models.RoleCandidate}, app))
}
