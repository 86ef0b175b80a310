package models

import "time"

type User struct {
	BaseModel
	FirstName    string   `gorm:"size:50;not null" json:"first_name"`
	LastName     string   `gorm:"size:50;not null" json:"last_name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:60;not null" json:"-"`
	PhoneNumber  *string  `gorm:"size:16" json:"phone_number,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'CANDIDATE'" json:"role"`

	// Soft-deactivation flag. Deactivated users cannot authenticate until
	// they complete the recovery flow.
	Deleted bool `gorm:"not null;default:false" json:"-"`

	// SessionInvalidatedAt is the revocation clock: any credential issued at
	// or before this instant is rejected even if still inside its TTL.
	// Null means no invalidation has happened yet.
	SessionInvalidatedAt *time.Time `json:"-"`

	RecoveryToken          *string    `gorm:"size:64;index" json:"-"`
	RecoveryTokenExpiresAt *time.Time `json:"-"`

	// Non-CANDIDATE roles always carry a company association, except
	// transiently inside the transactions that rewire membership.
	CompanyID *string  `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// Session is the single rotating long-lived token per user. The unique index
// on UserID enforces the one-active-session policy at the storage level.
type Session struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
