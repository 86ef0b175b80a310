package dto

import (
	"time"

	"jobforge_backend/internal/models"
)

// ApplyRequest - candidate submission for an active posting
type ApplyRequest struct {
	ResumeURL string  `json:"resume_url" binding:"required,url"`
	Notes     *string `json:"notes,omitempty"`
}

// ReviewApplicationRequest - recruiter-side review update; setting notes
// without a status moves the application to UNDER_REVIEW
type ReviewApplicationRequest struct {
	Status *models.ApplicationStatus `json:"status,omitempty" binding:"omitempty,oneof=UNDER_REVIEW REJECTED ACCEPTED"`
	Notes  *string                   `json:"notes,omitempty"`
}

// ApplicationDTO - view of a submission
type ApplicationDTO struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	JobTitle    string                   `json:"job_title,omitempty"`
	CandidateID string                   `json:"candidate_id"`
	ResumeURL   string                   `json:"resume_url"`
	Notes       *string                  `json:"notes,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func NewApplicationDTO(app *models.Application) ApplicationDTO {
	d := ApplicationDTO{
		ID:          app.ID,
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		ResumeURL:   app.ResumeURL,
		Notes:       app.Notes,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Job != nil {
		d.JobTitle = app.Job.Title
	}
	return d
}
