package services

import (
	"context"
	"errors"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/internal/services/dto"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, id auth.Identity, req dto.CreateCompanyRequest) (*dto.CompanyDTO, error)
	GetCompany(ctx context.Context, companyID string) (*dto.CompanyDTO, error)
	ListCompanies(ctx context.Context) ([]dto.CompanyDTO, error)
	UpdateCompany(ctx context.Context, id auth.Identity, companyID string, req dto.UpdateCompanyRequest) (*dto.CompanyDTO, error)
	AppointRecruiter(ctx context.Context, id auth.Identity, companyID string, userID string) error
	RemoveRecruiter(ctx context.Context, id auth.Identity, companyID string, userID string) error
	ChangeEmployer(ctx context.Context, id auth.Identity, companyID string, userID string) error
	DeleteCompany(ctx context.Context, id auth.Identity, companyID string) error
	ListRecruiters(ctx context.Context, id auth.Identity, companyID string) ([]dto.UserDTO, error)
}

type companyService struct {
	companies repositories.CompanyRepository
	users     repositories.UserRepository
	policy    *AuthorizationPolicy
}

func NewCompanyService(
	companies repositories.CompanyRepository,
	users repositories.UserRepository,
	policy *AuthorizationPolicy,
) CompanyService {
	return &companyService{companies: companies, users: users, policy: policy}
}

// CreateCompany turns a plain candidate into the employer of a new company.
// Strictly candidates: an admin founding a company would end up demoted to
// EMPLOYER, so the admin shortcut does not apply here.
func (s *companyService) CreateCompany(ctx context.Context, id auth.Identity, req dto.CreateCompanyRequest) (*dto.CompanyDTO, error) {
	if id.Role != models.RoleCandidate {
		return nil, apperrors.ErrUnauthorizedAction
	}
	founder, err := s.users.FindActiveByID(id.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if founder.CompanyID != nil {
		return nil, apperrors.NewForbiddenError("already attached to a company")
	}

	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
	}
	if req.LogoURL != "" {
		company.LogoURL = &req.LogoURL
	}

	if err := s.companies.CreateWithFounder(company, founder); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "company created", "company_id", company.ID, "employer_id", founder.ID)
	out := dto.NewCompanyDTO(company)
	return &out, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*dto.CompanyDTO, error) {
	company, err := s.companies.FindActiveByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewCompanyDTO(company)
	return &out, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]dto.CompanyDTO, error) {
	companies, err := s.companies.FindAllActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		out = append(out, dto.NewCompanyDTO(&companies[i]))
	}
	return out, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, id auth.Identity, companyID string, req dto.UpdateCompanyRequest) (*dto.CompanyDTO, error) {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.LogoURL != nil {
		if *req.LogoURL == "" {
			company.LogoURL = nil
		} else {
			company.LogoURL = req.LogoURL
		}
	}

	if err := s.companies.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewCompanyDTO(company)
	return &out, nil
}

// AppointRecruiter attaches an unaffiliated candidate as company recruiter.
func (s *companyService) AppointRecruiter(ctx context.Context, id auth.Identity, companyID string, userID string) error {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return err
	}

	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	if user.Role != models.RoleCandidate {
		return apperrors.NewForbiddenError("only candidates can be appointed as recruiters")
	}
	if user.CompanyID != nil {
		return apperrors.NewConflictError("user already belongs to a company")
	}

	if err := s.companies.AppointRecruiter(companyID, user); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "recruiter appointed", "company_id", companyID, "user_id", userID)
	return nil
}

// RemoveRecruiter detaches a recruiter; their postings move to the employer.
func (s *companyService) RemoveRecruiter(ctx context.Context, id auth.Identity, companyID string, userID string) error {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return err
	}

	user, err := s.users.FindActiveByID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	if user.Role != models.RoleRecruiter || user.CompanyID == nil || *user.CompanyID != companyID {
		return apperrors.NewForbiddenError("user is not a recruiter of this company")
	}

	newManagerID := userID
	if company.EmployerID != nil {
		newManagerID = *company.EmployerID
	}
	if err := s.companies.RemoveRecruiter(company, user, newManagerID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "recruiter removed", "company_id", companyID, "user_id", userID)
	return nil
}

// ChangeEmployer hands the company over to a successor. The outgoing
// employer is demoted to candidate and loses all tokens.
func (s *companyService) ChangeEmployer(ctx context.Context, id auth.Identity, companyID string, userID string) error {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return err
	}
	if company.EmployerID == nil {
		return apperrors.NewForbiddenError("company has no current employer")
	}
	if *company.EmployerID == userID {
		return apperrors.NewConflictError("user is already the employer of this company")
	}

	current, err := s.users.FindActiveByID(*company.EmployerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	successor, err := s.users.FindActiveByID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}
	switch successor.Role {
	case models.RoleCandidate:
		if successor.CompanyID != nil {
			return apperrors.NewConflictError("user already belongs to a company")
		}
	case models.RoleRecruiter:
		if successor.CompanyID == nil || *successor.CompanyID != companyID {
			return apperrors.NewForbiddenError("recruiter belongs to another company")
		}
	default:
		return apperrors.NewForbiddenError("user cannot take over a company")
	}

	if err := s.companies.ChangeEmployer(company, current, successor); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "employer changed", "company_id", companyID, "from", current.ID, "to", successor.ID)
	return nil
}

// DeleteCompany soft-deletes the company, its postings, and detaches every
// member. All member tokens are revoked in the same transaction.
func (s *companyService) DeleteCompany(ctx context.Context, id auth.Identity, companyID string) error {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return err
	}

	if err := s.companies.SoftDelete(company, company.RelatedUsers); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "company deleted", "company_id", companyID, "by", id.UserID)
	return nil
}

// ListRecruiters returns the recruiters currently attached to the company.
func (s *companyService) ListRecruiters(ctx context.Context, id auth.Identity, companyID string) ([]dto.UserDTO, error) {
	company, err := s.loadCompany(companyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(company.RelatedUsers))
	for i := range company.RelatedUsers {
		if company.RelatedUsers[i].Role == models.RoleRecruiter {
			out = append(out, dto.NewUserDTO(&company.RelatedUsers[i]))
		}
	}
	return out, nil
}

func (s *companyService) loadCompany(companyID string) (*models.Company, error) {
	company, err := s.companies.FindActiveByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}
