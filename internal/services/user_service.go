package services

import (
	"context"
	"errors"
	"strings"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/internal/services/dto"
)

type UserService interface {
	GetUser(ctx context.Context, id auth.Identity, userID string) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, id auth.Identity) ([]dto.UserDTO, error)
	UpdateDetails(ctx context.Context, id auth.Identity, userID string, req dto.UpdateUserRequest) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, id auth.Identity, req dto.ChangePasswordRequest) error
	Deactivate(ctx context.Context, id auth.Identity, userID string) error
}

type userService struct {
	users     repositories.UserRepository
	companies repositories.CompanyRepository
	policy    *AuthorizationPolicy
}

func NewUserService(
	users repositories.UserRepository,
	companies repositories.CompanyRepository,
	policy *AuthorizationPolicy,
) UserService {
	return &userService{users: users, companies: companies, policy: policy}
}

func (s *userService) GetUser(ctx context.Context, id auth.Identity, userID string) (*dto.UserDTO, error) {
	if err := s.policy.EnsureSelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *userService) ListUsers(ctx context.Context, id auth.Identity) ([]dto.UserDTO, error) {
	if err := s.policy.EnsureRole(id); err != nil {
		return nil, err
	}
	users, err := s.users.FindAllActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	return out, nil
}

func (s *userService) UpdateDetails(ctx context.Context, id auth.Identity, userID string, req dto.UpdateUserRequest) (*dto.UserDTO, error) {
	if err := s.policy.EnsureSelfOrAdmin(id, userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		phone := normalizePhone(*req.PhoneNumber)
		if phone == "" {
			user.PhoneNumber = nil
		} else {
			user.PhoneNumber = &phone
		}
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *userService) ChangePassword(ctx context.Context, id auth.Identity, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindActiveByID(id.UserID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword.WithError(err)
	}
	if req.NewPassword == req.CurrentPassword {
		return apperrors.NewBadRequestError("new password must differ from the current one")
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	// The caller keeps working with their current tokens only until the
	// revocation clock ticks; everything issued before is dead.
	if err := s.users.InvalidateSessions(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "password changed", "user_id", user.ID)
	return nil
}

// Deactivate marks the account deleted and revokes all of its tokens.
// Company ties are untangled first: an employer must hand over or delete
// the company, a recruiter is detached with their postings reassigned.
func (s *userService) Deactivate(ctx context.Context, id auth.Identity, userID string) error {
	if err := s.policy.EnsureSelfOrAdmin(id, userID); err != nil {
		return err
	}
	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.CompanyID != nil {
		company, err := s.companies.FindActiveByID(*user.CompanyID)
		if err != nil && !errors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.InternalError(err)
		}
		if company != nil {
			switch user.Role {
			case models.RoleEmployer:
				return apperrors.NewForbiddenError("transfer or delete the company before deactivating this account")
			case models.RoleRecruiter:
				newManagerID := user.ID
				if company.EmployerID != nil {
					newManagerID = *company.EmployerID
				}
				if err := s.companies.RemoveRecruiter(company, user, newManagerID); err != nil {
					return apperrors.InternalError(err)
				}
			}
		}
	}

	user.Deleted = true
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.users.InvalidateSessions(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "account deactivated", "user_id", user.ID, "by", id.UserID)
	return nil
}

// normalizePhone strips formatting characters, keeping digits and a
// leading plus sign.
func normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
