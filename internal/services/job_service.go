package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/internal/services/dto"
)

type JobService interface {
	CreateJob(ctx context.Context, id auth.Identity, req dto.CreateJobRequest) (*dto.JobDTO, error)
	// GetJob takes a nil identity for anonymous callers, who see ACTIVE
	// postings only.
	GetJob(ctx context.Context, id *auth.Identity, jobID string) (*dto.JobDTO, error)
	ListActiveJobs(ctx context.Context) ([]dto.JobDTO, error)
	ListMyJobs(ctx context.Context, id auth.Identity) ([]dto.JobDTO, error)
	ListCompanyJobs(ctx context.Context, id auth.Identity, companyID string, statuses []models.JobStatus) ([]dto.JobDTO, error)
	UpdateJob(ctx context.Context, id auth.Identity, jobID string, req dto.UpdateJobRequest) (*dto.JobDTO, error)
	RepostJob(ctx context.Context, id auth.Identity, jobID string) (*dto.JobDTO, error)
	DuplicateJob(ctx context.Context, id auth.Identity, jobID string, req dto.DuplicateJobRequest) (*dto.JobDTO, error)
	DeleteJob(ctx context.Context, id auth.Identity, jobID string) error
	TransferJobManagement(ctx context.Context, id auth.Identity, companyID string, req dto.TransferJobsRequest) error
}

type jobService struct {
	jobs           repositories.JobRepository
	companies      repositories.CompanyRepository
	users          repositories.UserRepository
	policy         *AuthorizationPolicy
	repostCooldown time.Duration
}

func NewJobService(
	jobs repositories.JobRepository,
	companies repositories.CompanyRepository,
	users repositories.UserRepository,
	policy *AuthorizationPolicy,
	repostCooldown time.Duration,
) JobService {
	return &jobService{
		jobs:           jobs,
		companies:      companies,
		users:          users,
		policy:         policy,
		repostCooldown: repostCooldown,
	}
}

func (s *jobService) CreateJob(ctx context.Context, id auth.Identity, req dto.CreateJobRequest) (*dto.JobDTO, error) {
	if err := s.policy.EnsureRole(id, models.RoleEmployer, models.RoleRecruiter); err != nil {
		return nil, err
	}
	if id.CompanyID == nil {
		return nil, apperrors.NewForbiddenError("not attached to a company")
	}

	status := models.JobStatusDraft
	if req.PublishNow {
		status = models.JobStatusActive
	}
	job := &models.Job{
		Title:           req.Title,
		Location:        req.Location,
		Description:     req.Description,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
		WorkArrangement: req.WorkArrangement,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		CurrencyCode:    req.CurrencyCode,
		Skills:          dto.EncodeSkills(req.Skills),
		Status:          status,
		CompanyID:       *id.CompanyID,
		CreatedByID:     id.UserID,
	}

	if err := s.jobs.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "status", job.Status)
	out := dto.NewJobDTO(job)
	return &out, nil
}

func (s *jobService) GetJob(ctx context.Context, id *auth.Identity, jobID string) (*dto.JobDTO, error) {
	job, err := s.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		// Non-active postings are visible to managing staff only. The
		// outside world gets the same answer as for an absent job.
		if id == nil || s.policy.EnsureJobManagement(*id, job) != nil {
			return nil, apperrors.ErrJobNotFound
		}
	}
	out := dto.NewJobDTO(job)
	return &out, nil
}

func (s *jobService) ListActiveJobs(ctx context.Context) ([]dto.JobDTO, error) {
	jobs, err := s.jobs.FindActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobDTOs(jobs), nil
}

// ListMyJobs returns the postings the caller created, regardless of status.
func (s *jobService) ListMyJobs(ctx context.Context, id auth.Identity) ([]dto.JobDTO, error) {
	if err := s.policy.EnsureRole(id, models.RoleEmployer, models.RoleRecruiter); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.FindByCreator(id.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobDTOs(jobs), nil
}

func (s *jobService) ListCompanyJobs(ctx context.Context, id auth.Identity, companyID string, statuses []models.JobStatus) ([]dto.JobDTO, error) {
	if err := s.policy.EnsureCompanyRole(id, companyID, models.RoleEmployer, models.RoleRecruiter); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.FindByCompany(companyID, statuses)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobDTOs(jobs), nil
}

func (s *jobService) UpdateJob(ctx context.Context, id auth.Identity, jobID string, req dto.UpdateJobRequest) (*dto.JobDTO, error) {
	job, err := s.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureJobManagement(id, job); err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != job.Status {
		if !models.ValidJobStatus(*req.Status) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown job status %q", *req.Status))
		}
		if !job.Status.CanTransitionTo(*req.Status) {
			return nil, apperrors.IllegalTransition(string(job.Status), string(*req.Status))
		}
		job.Status = *req.Status
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.WorkArrangement != nil {
		job.WorkArrangement = *req.WorkArrangement
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if req.CurrencyCode != nil {
		job.CurrencyCode = *req.CurrencyCode
	}
	if req.Skills != nil {
		job.Skills = dto.EncodeSkills(req.Skills)
	}
	if job.SalaryMax < job.SalaryMin {
		return nil, apperrors.NewBadRequestError("salary_max must not be below salary_min")
	}

	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := dto.NewJobDTO(job)
	return &out, nil
}

// RepostJob bumps the posting's freshness stamp. Allowed once per cooldown
// window, measured from the previous repost or the creation time.
func (s *jobService) RepostJob(ctx context.Context, id auth.Identity, jobID string) (*dto.JobDTO, error) {
	job, err := s.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureJobManagement(id, job); err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.NewForbiddenError("only active postings can be reposted")
	}

	now := time.Now().UTC()
	eligibleAt := job.LastActionAt().Add(s.repostCooldown)
	if now.Before(eligibleAt) {
		return nil, apperrors.ErrRepostRateLimited.WithDetails(map[string]string{
			"eligible_at": eligibleAt.Format(time.RFC3339),
		})
	}

	job.RepostedAt = &now
	if err := s.jobs.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job reposted", "job_id", job.ID)
	out := dto.NewJobDTO(job)
	return &out, nil
}

// DuplicateJob clones a CLOSED posting into a fresh one with no history.
func (s *jobService) DuplicateJob(ctx context.Context, id auth.Identity, jobID string, req dto.DuplicateJobRequest) (*dto.JobDTO, error) {
	source, err := s.loadJob(jobID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.EnsureJobManagement(id, source); err != nil {
		return nil, err
	}
	if source.Status != models.JobStatusClosed {
		return nil, apperrors.NewForbiddenError("only closed postings can be duplicated")
	}

	clone := &models.Job{
		Title:           source.Title,
		Location:        source.Location,
		Description:     source.Description,
		EmploymentType:  source.EmploymentType,
		ExperienceLevel: source.ExperienceLevel,
		WorkArrangement: source.WorkArrangement,
		SalaryMin:       source.SalaryMin,
		SalaryMax:       source.SalaryMax,
		CurrencyCode:    source.CurrencyCode,
		Skills:          source.Skills,
		Status:          req.Status,
		CompanyID:       source.CompanyID,
		CreatedByID:     id.UserID,
	}
	if err := s.jobs.Create(clone); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job duplicated", "source_id", source.ID, "job_id", clone.ID)
	out := dto.NewJobDTO(clone)
	return &out, nil
}

// DeleteJob soft-deletes by moving to the terminal DELETED status.
func (s *jobService) DeleteJob(ctx context.Context, id auth.Identity, jobID string) error {
	job, err := s.loadJob(jobID)
	if err != nil {
		return err
	}
	if err := s.policy.EnsureJobManagement(id, job); err != nil {
		return err
	}
	if !job.Status.CanTransitionTo(models.JobStatusDeleted) {
		return apperrors.IllegalTransition(string(job.Status), string(models.JobStatusDeleted))
	}
	job.Status = models.JobStatusDeleted
	if err := s.jobs.Update(job); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job deleted", "job_id", job.ID)
	return nil
}

// TransferJobManagement moves every posting managed by one staff member to
// another within the same company.
func (s *jobService) TransferJobManagement(ctx context.Context, id auth.Identity, companyID string, req dto.TransferJobsRequest) error {
	company, err := s.companies.FindActiveByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.ErrCompanyNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.policy.EnsureEmployerOf(id, company); err != nil {
		return err
	}

	for _, userID := range []string{req.FromUserID, req.ToUserID} {
		user, err := s.users.FindActiveByID(userID)
		if err != nil {
			return apperrors.ErrUserNotFound
		}
		if user.CompanyID == nil || *user.CompanyID != companyID {
			return apperrors.NewForbiddenError("both users must belong to the company")
		}
	}

	moved, err := s.jobs.ReassignManagement(companyID, req.FromUserID, req.ToUserID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job management transferred",
		"company_id", companyID, "from", req.FromUserID, "to", req.ToUserID, "count", moved)
	return nil
}

func (s *jobService) loadJob(jobID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func toJobDTOs(jobs []models.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobDTO(&jobs[i]))
	}
	return out
}
