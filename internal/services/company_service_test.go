package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/services/dto"
)

func TestCreateCompanyPromotesFounder(t *testing.T) {
	f := newDomainFixture(t)
	candidate := f.seedUser(t, models.RoleCandidate, nil)
	ctx := context.Background()

	company, err := f.companySvc.CreateCompany(ctx, identityOf(candidate), dto.CreateCompanyRequest{
		Name:        "Acme",
		Description: "We make everything",
		Industry:    "manufacturing",
	})
	require.NoError(t, err)
	require.NotNil(t, company.EmployerID)
	assert.Equal(t, candidate.ID, *company.EmployerID)

	founder, err := f.users.FindByID(candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, founder.Role)
	require.NotNil(t, founder.CompanyID)
	assert.Equal(t, company.ID, *founder.CompanyID)
	// Existing tokens stop working so the next login carries the new role.
	assert.NotNil(t, founder.SessionInvalidatedAt)
}

func TestCreateCompanyRequiresUnaffiliatedCandidate(t *testing.T) {
	f := newDomainFixture(t)
	_, employer := f.seedCompany(t)
	ctx := context.Background()

	_, err := f.companySvc.CreateCompany(ctx, identityOf(employer), dto.CreateCompanyRequest{
		Name: "Second", Description: "d", Industry: "tech",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)
}

func TestAppointAndRemoveRecruiter(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	candidate := f.seedUser(t, models.RoleCandidate, nil)
	ctx := context.Background()

	require.NoError(t, f.companySvc.AppointRecruiter(ctx, identityOf(employer), company.ID, candidate.ID))

	appointed, err := f.users.FindByID(candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, appointed.Role)
	assert.NotNil(t, appointed.SessionInvalidatedAt)

	// The recruiter's postings move to the employer on removal.
	job := f.seedJob(t, company.ID, appointed.ID, models.JobStatusActive)
	require.NoError(t, f.companySvc.RemoveRecruiter(ctx, identityOf(employer), company.ID, appointed.ID))

	removed, err := f.users.FindByID(candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, removed.Role)
	assert.Nil(t, removed.CompanyID)

	reassigned, err := f.jobs.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, employer.ID, reassigned.CreatedByID)
}

func TestAppointRecruiterRejectsAffiliated(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	_, otherEmployer := f.seedCompany(t)
	ctx := context.Background()

	err := f.companySvc.AppointRecruiter(ctx, identityOf(employer), company.ID, otherEmployer.ID)
	assert.Error(t, err)

	// Only the company's own employer can appoint.
	candidate := f.seedUser(t, models.RoleCandidate, nil)
	err = f.companySvc.AppointRecruiter(ctx, identityOf(otherEmployer), company.ID, candidate.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)
}

func TestChangeEmployer(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	recruiter := f.seedUser(t, models.RoleRecruiter, &company.ID)
	job := f.seedJob(t, company.ID, employer.ID, models.JobStatusActive)
	ctx := context.Background()

	require.NoError(t, f.companySvc.ChangeEmployer(ctx, identityOf(employer), company.ID, recruiter.ID))

	outgoing, err := f.users.FindByID(employer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, outgoing.Role)
	assert.Nil(t, outgoing.CompanyID)
	assert.NotNil(t, outgoing.SessionInvalidatedAt)

	successor, err := f.users.FindByID(recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, successor.Role)

	// The outgoing employer's postings follow the handover.
	moved, err := f.jobs.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, moved.CreatedByID)

	got, err := f.companySvc.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EmployerID)
	assert.Equal(t, recruiter.ID, *got.EmployerID)
}

func TestChangeEmployerRejectsForeignRecruiter(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	otherCompany, _ := f.seedCompany(t)
	foreign := f.seedUser(t, models.RoleRecruiter, &otherCompany.ID)

	err := f.companySvc.ChangeEmployer(context.Background(), identityOf(employer), company.ID, foreign.ID)
	assert.Error(t, err)
}

func TestDeleteCompanyCascades(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	recruiter := f.seedUser(t, models.RoleRecruiter, &company.ID)
	job := f.seedJob(t, company.ID, recruiter.ID, models.JobStatusActive)
	ctx := context.Background()

	require.NoError(t, f.companySvc.DeleteCompany(ctx, identityOf(employer), company.ID))

	_, err := f.companySvc.GetCompany(ctx, company.ID)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)

	// Every member is demoted, detached, and forced to re-authenticate.
	for _, userID := range []string{employer.ID, recruiter.ID} {
		u, err := f.users.FindByID(userID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleCandidate, u.Role)
		assert.Nil(t, u.CompanyID)
		assert.NotNil(t, u.SessionInvalidatedAt)
	}

	stored := f.jobs.jobs[job.ID]
	assert.Equal(t, models.JobStatusDeleted, stored.Status)
}

func TestUpdateCompany(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	recruiter := f.seedUser(t, models.RoleRecruiter, &company.ID)
	ctx := context.Background()

	name := "Acme Rebranded"
	updated, err := f.companySvc.UpdateCompany(ctx, identityOf(employer), company.ID, dto.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	// Recruiters cannot edit the company profile.
	_, err = f.companySvc.UpdateCompany(ctx, identityOf(recruiter), company.ID, dto.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)
}

func TestListRecruiters(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	first := f.seedUser(t, models.RoleRecruiter, &company.ID)
	second := f.seedUser(t, models.RoleRecruiter, &company.ID)
	ctx := context.Background()

	recruiters, err := f.companySvc.ListRecruiters(ctx, identityOf(employer), company.ID)
	require.NoError(t, err)
	require.Len(t, recruiters, 2)
	ids := []string{recruiters[0].ID, recruiters[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	// The employer is not part of their own recruiter roster.
	assert.NotContains(t, ids, employer.ID)

	// Only the employer (or an admin) sees the roster.
	_, err = f.companySvc.ListRecruiters(ctx, identityOf(first), company.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)
}
