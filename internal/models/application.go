package models

type Application struct {
	BaseModel
	JobID       string `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateID string `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"candidate_id"`

	ResumeURL string  `gorm:"size:500" json:"resume_url,omitempty"`
	Notes     *string `gorm:"type:text" json:"notes,omitempty"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'APPLIED'" json:"status"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"-"`
	Candidate *User `gorm:"foreignKey:CandidateID" json:"-"`
}
