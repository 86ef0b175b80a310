package dto

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"jobforge_backend/internal/models"
)

// CreateJobRequest - new posting, created in DRAFT unless publish_now is set
type CreateJobRequest struct {
	Title           string   `json:"title" binding:"required"`
	Location        string   `json:"location" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	EmploymentType  string   `json:"employment_type" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel string   `json:"experience_level" binding:"required,oneof=JUNIOR MID SENIOR LEAD"`
	WorkArrangement string   `json:"work_arrangement" binding:"required,oneof=ONSITE HYBRID REMOTE"`
	SalaryMin       float64  `json:"salary_min" binding:"gte=0"`
	SalaryMax       float64  `json:"salary_max" binding:"gtefield=SalaryMin"`
	CurrencyCode    string   `json:"currency_code" binding:"required,len=3" validate:"currency_code"`
	Skills          []string `json:"skills" binding:"required,min=1"`
	PublishNow      bool     `json:"publish_now"`
}

// UpdateJobRequest - posting edit; a status change runs the transition table
type UpdateJobRequest struct {
	Title           *string           `json:"title,omitempty"`
	Location        *string           `json:"location,omitempty"`
	Description     *string           `json:"description,omitempty"`
	EmploymentType  *string           `json:"employment_type,omitempty" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel *string           `json:"experience_level,omitempty" binding:"omitempty,oneof=JUNIOR MID SENIOR LEAD"`
	WorkArrangement *string           `json:"work_arrangement,omitempty" binding:"omitempty,oneof=ONSITE HYBRID REMOTE"`
	SalaryMin       *float64          `json:"salary_min,omitempty"`
	SalaryMax       *float64          `json:"salary_max,omitempty"`
	CurrencyCode    *string           `json:"currency_code,omitempty" binding:"omitempty,len=3" validate:"omitempty,currency_code"`
	Skills          []string          `json:"skills,omitempty"`
	Status          *models.JobStatus `json:"status,omitempty"`
}

// DuplicateJobRequest - clone of a CLOSED posting into a fresh one
type DuplicateJobRequest struct {
	Status models.JobStatus `json:"status" binding:"required,oneof=DRAFT ACTIVE"`
}

// TransferJobsRequest - handover of managed postings to a colleague
type TransferJobsRequest struct {
	FromUserID string `json:"from_user_id" binding:"required,uuid"`
	ToUserID   string `json:"to_user_id" binding:"required,uuid"`
}

// JobDTO - public view of a posting
type JobDTO struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Location        string           `json:"location"`
	Description     string           `json:"description"`
	EmploymentType  string           `json:"employment_type"`
	ExperienceLevel string           `json:"experience_level"`
	WorkArrangement string           `json:"work_arrangement"`
	SalaryMin       float64          `json:"salary_min"`
	SalaryMax       float64          `json:"salary_max"`
	CurrencyCode    string           `json:"currency_code"`
	Skills          []string         `json:"skills"`
	Status          models.JobStatus `json:"status"`
	CompanyID       string           `json:"company_id"`
	CompanyName     string           `json:"company_name,omitempty"`
	RepostedAt      *time.Time       `json:"reposted_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func NewJobDTO(job *models.Job) JobDTO {
	d := JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		Location:        job.Location,
		Description:     job.Description,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ExperienceLevel,
		WorkArrangement: job.WorkArrangement,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		CurrencyCode:    job.CurrencyCode,
		Skills:          decodeSkills(job.Skills),
		Status:          job.Status,
		CompanyID:       job.CompanyID,
		RepostedAt:      job.RepostedAt,
		CreatedAt:       job.CreatedAt,
	}
	if job.Company != nil {
		d.CompanyName = job.Company.Name
	}
	return d
}

func decodeSkills(raw datatypes.JSON) []string {
	var skills []string
	if len(raw) == 0 {
		return skills
	}
	_ = json.Unmarshal(raw, &skills)
	return skills
}

// EncodeSkills serializes the skill list for the jsonb column.
func EncodeSkills(skills []string) datatypes.JSON {
	raw, _ := json.Marshal(skills)
	return datatypes.JSON(raw)
}
