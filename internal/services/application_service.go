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

type ApplicationService interface {
	Apply(ctx context.Context, id auth.Identity, jobID string, req dto.ApplyRequest) (*dto.ApplicationDTO, error)
	MyApplications(ctx context.Context, id auth.Identity) ([]dto.ApplicationDTO, error)
	ListByJob(ctx context.Context, id auth.Identity, jobID string) ([]dto.ApplicationDTO, error)
	GetApplication(ctx context.Context, id auth.Identity, appID string) (*dto.ApplicationDTO, error)
	Review(ctx context.Context, id auth.Identity, appID string, req dto.ReviewApplicationRequest) (*dto.ApplicationDTO, error)
	Withdraw(ctx context.Context, id auth.Identity, appID string) (*dto.ApplicationDTO, error)
	AdminDelete(ctx context.Context, id auth.Identity, appID string) error
}

type applicationService struct {
	applications repositories.ApplicationRepository
	jobs         repositories.JobRepository
	policy       *AuthorizationPolicy
}

func NewApplicationService(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	policy *AuthorizationPolicy,
) ApplicationService {
	return &applicationService{applications: applications, jobs: jobs, policy: policy}
}

// Apply submits a candidate's application. The active-status and uniqueness
// checks run inside the repository transaction under a row lock, so a
// posting closed mid-request is still rejected.
func (s *applicationService) Apply(ctx context.Context, id auth.Identity, jobID string, req dto.ApplyRequest) (*dto.ApplicationDTO, error) {
	// Strictly candidates; this is one of the few places an admin is not
	// a superset of everyone else.
	if id.Role != models.RoleCandidate {
		return nil, apperrors.ErrUnauthorizedAction
	}

	app := &models.Application{
		JobID:       jobID,
		CandidateID: id.UserID,
		ResumeURL:   req.ResumeURL,
		Notes:       req.Notes,
		Status:      models.ApplicationStatusApplied,
	}
	if err := s.applications.CreateForActiveJob(app); err != nil {
		switch {
		case errors.Is(err, repositories.ErrJobNotFound):
			return nil, apperrors.ErrJobNotFound
		case errors.Is(err, repositories.ErrJobNotOpen):
			return nil, apperrors.NewForbiddenError("job is not accepting applications")
		case errors.Is(err, repositories.ErrDuplicateApplication):
			return nil, apperrors.ErrDuplicateApplication
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "application submitted", "application_id", app.ID, "job_id", jobID)
	out := dto.NewApplicationDTO(app)
	return &out, nil
}

func (s *applicationService) MyApplications(ctx context.Context, id auth.Identity) ([]dto.ApplicationDTO, error) {
	apps, err := s.applications.FindByCandidate(id.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationDTOs(apps), nil
}

func (s *applicationService) ListByJob(ctx context.Context, id auth.Identity, jobID string) ([]dto.ApplicationDTO, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.policy.EnsureJobManagement(id, job); err != nil {
		return nil, err
	}
	apps, err := s.applications.FindByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationDTOs(apps), nil
}

func (s *applicationService) GetApplication(ctx context.Context, id auth.Identity, appID string) (*dto.ApplicationDTO, error) {
	app, err := s.loadApplication(appID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureApplicationRead(id, app); err != nil {
		return nil, err
	}
	out := dto.NewApplicationDTO(app)
	return &out, nil
}

// Review applies a reviewer-side update. Writing notes without an explicit
// status moves a fresh application to UNDER_REVIEW.
func (s *applicationService) Review(ctx context.Context, id auth.Identity, appID string, req dto.ReviewApplicationRequest) (*dto.ApplicationDTO, error) {
	app, err := s.loadApplication(appID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureApplicationReview(id, app); err != nil {
		return nil, err
	}
	// Reviewing is only possible while the posting itself is live.
	if app.Job == nil || app.Job.Status != models.JobStatusActive {
		return nil, apperrors.NewForbiddenError("job is not accepting application updates")
	}

	target := req.Status
	if target == nil && req.Notes != nil && app.Status == models.ApplicationStatusApplied {
		underReview := models.ApplicationStatusUnderReview
		target = &underReview
	}
	if target != nil && *target != app.Status {
		if !app.Status.CanTransitionTo(*target) {
			return nil, apperrors.IllegalTransition(string(app.Status), string(*target))
		}
		app.Status = *target
	}
	if req.Notes != nil {
		app.Notes = req.Notes
	}

	if err := s.applications.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "application reviewed", "application_id", app.ID, "status", app.Status)
	out := dto.NewApplicationDTO(app)
	return &out, nil
}

// Withdraw is candidate-only and fails on applications already settled.
func (s *applicationService) Withdraw(ctx context.Context, id auth.Identity, appID string) (*dto.ApplicationDTO, error) {
	app, err := s.loadApplication(appID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureWithdraw(id, app); err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, apperrors.IllegalTransition(string(app.Status), string(models.ApplicationStatusWithdrawn))
	}

	app.Status = models.ApplicationStatusWithdrawn
	if err := s.applications.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "application withdrawn", "application_id", app.ID)
	out := dto.NewApplicationDTO(app)
	return &out, nil
}

// AdminDelete removes the record permanently.
func (s *applicationService) AdminDelete(ctx context.Context, id auth.Identity, appID string) error {
	if !id.IsAdmin() {
		return apperrors.ErrUnauthorizedAction
	}
	if err := s.applications.Delete(appID); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "application purged", "application_id", appID, "by", id.UserID)
	return nil
}

func (s *applicationService) loadApplication(appID string) (*models.Application, error) {
	app, err := s.applications.FindByID(appID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func toApplicationDTOs(apps []models.Application) []dto.ApplicationDTO {
	out := make([]dto.ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewApplicationDTO(&apps[i]))
	}
	return out
}
