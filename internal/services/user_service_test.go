package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/services/dto"
)

func TestGetUserSelfOrAdmin(t *testing.T) {
	f := newDomainFixture(t)
	alice := f.seedUser(t, models.RoleCandidate, nil)
	bob := f.seedUser(t, models.RoleCandidate, nil)
	admin := f.seedUser(t, models.RoleAdmin, nil)
	ctx := context.Background()

	got, err := f.userSvc.GetUser(ctx, identityOf(alice), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = f.userSvc.GetUser(ctx, identityOf(bob), alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)

	_, err = f.userSvc.GetUser(ctx, identityOf(admin), alice.ID)
	assert.NoError(t, err)
}

func TestUpdateDetailsNormalizesPhone(t *testing.T) {
	f := newDomainFixture(t)
	alice := f.seedUser(t, models.RoleCandidate, nil)
	ctx := context.Background()

	phone := "+49 (151) 234-56 78"
	updated, err := f.userSvc.UpdateDetails(ctx, identityOf(alice), alice.ID, dto.UpdateUserRequest{PhoneNumber: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "+491512345678", *updated.PhoneNumber)
}

func TestChangePassword(t *testing.T) {
	f := newDomainFixture(t)
	alice := f.seedUser(t, models.RoleCandidate, nil)
	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)
	alice.PasswordHash = hash
	require.NoError(t, f.users.Update(alice))
	ctx := context.Background()

	err = f.userSvc.ChangePassword(ctx, identityOf(alice), dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = f.userSvc.ChangePassword(ctx, identityOf(alice), dto.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)

	stored, err := f.users.FindByID(alice.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("new-password", stored.PasswordHash))
	// Outstanding credentials die with the password change.
	assert.NotNil(t, stored.SessionInvalidatedAt)
}

func TestDeactivateSelf(t *testing.T) {
	f := newDomainFixture(t)
	alice := f.seedUser(t, models.RoleCandidate, nil)
	bob := f.seedUser(t, models.RoleCandidate, nil)
	ctx := context.Background()

	err := f.userSvc.Deactivate(ctx, identityOf(bob), alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)

	require.NoError(t, f.userSvc.Deactivate(ctx, identityOf(alice), alice.ID))

	stored, err := f.users.FindByID(alice.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.NotNil(t, stored.SessionInvalidatedAt)

	_, err = f.userSvc.GetUser(ctx, identityOf(alice), alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeactivateEmployerBlockedWhileOwningCompany(t *testing.T) {
	f := newDomainFixture(t)
	_, employer := f.seedCompany(t)

	err := f.userSvc.Deactivate(context.Background(), identityOf(employer), employer.ID)
	require.Error(t, err)

	stored, ferr := f.users.FindByID(employer.ID)
	require.NoError(t, ferr)
	assert.False(t, stored.Deleted)
}

func TestDeactivateRecruiterDetachesAndReassigns(t *testing.T) {
	f := newDomainFixture(t)
	company, employer := f.seedCompany(t)
	recruiter := f.seedUser(t, models.RoleRecruiter, &company.ID)
	job := f.seedJob(t, company.ID, recruiter.ID, models.JobStatusActive)
	ctx := context.Background()

	require.NoError(t, f.userSvc.Deactivate(ctx, identityOf(recruiter), recruiter.ID))

	stored, err := f.users.FindByID(recruiter.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.Nil(t, stored.CompanyID)

	reassigned, err := f.jobs.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, employer.ID, reassigned.CreatedByID)
}

func TestListUsersAdminOnly(t *testing.T) {
	f := newDomainFixture(t)
	alice := f.seedUser(t, models.RoleCandidate, nil)
	admin := f.seedUser(t, models.RoleAdmin, nil)
	ctx := context.Background()

	_, err := f.userSvc.ListUsers(ctx, identityOf(alice))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedAction)

	users, err := f.userSvc.ListUsers(ctx, identityOf(admin))
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
