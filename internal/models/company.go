package models

type Company struct {
	BaseModel
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Industry    string  `gorm:"size:100;not null" json:"industry"`
	LogoURL     *string `gorm:"size:500" json:"logo_url,omitempty"`

	// Soft delete flag. A deleted company keeps its rows for audit.
	Deleted bool `gorm:"not null;default:false" json:"-"`

	// Exactly one employer owns the company; recruiters are the other
	// related users.
	EmployerID *string `gorm:"type:uuid" json:"employer_id,omitempty"`

	RelatedUsers []User `gorm:"foreignKey:CompanyID" json:"-"`
	Jobs         []Job  `gorm:"foreignKey:CompanyID" json:"-"`
}
