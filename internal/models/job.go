package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title           string  `gorm:"size:100;not null" json:"title"`
	Location        string  `gorm:"size:100;not null" json:"location"`
	Description     string  `gorm:"type:text;not null" json:"description"`
	EmploymentType  string  `gorm:"size:30" json:"employment_type,omitempty"`
	ExperienceLevel string  `gorm:"size:30" json:"experience_level,omitempty"`
	WorkArrangement string  `gorm:"size:30" json:"work_arrangement,omitempty"`
	SalaryMin       float64 `gorm:"not null" json:"salary_min"`
	SalaryMax       float64 `json:"salary_max"`
	CurrencyCode    string  `gorm:"size:3;not null" json:"currency_code"`

	// Skills are a JSONB list of skill names.
	Skills datatypes.JSON `gorm:"type:jsonb" json:"skills"`

	Status JobStatus `gorm:"type:varchar(20);not null" json:"status"`

	// RepostedAt is null until the first repost; the repost cooldown is
	// measured from it, falling back to CreatedAt.
	RepostedAt *time.Time `json:"reposted_at,omitempty"`

	CompanyID   string `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedByID string `gorm:"type:uuid;not null" json:"created_by_id"`

	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

// LastActionAt is the instant the repost cooldown counts from.
func (j *Job) LastActionAt() time.Time {
	if j.RepostedAt != nil {
		return *j.RepostedAt
	}
	return j.CreatedAt
}
