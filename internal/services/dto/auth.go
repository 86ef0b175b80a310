package dto

import (
	"time"

	"jobforge_backend/internal/models"
)

// SignUpRequest - new account registration
type SignUpRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// LoginRequest - credential sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RenewAccessTokenRequest - short-lived token reissue from the session token
type RenewAccessTokenRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
}

// RecoveryInitRequest - start of the account recovery flow
type RecoveryInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RecoveryCompleteRequest - finish of the account recovery flow
type RecoveryCompleteRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse - token pair plus the authenticated user
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	SessionToken string  `json:"session_token"`
	User         UserDTO `json:"user"`
}

// AccessTokenResponse - reissued short-lived token plus the session token,
// which renewal never rotates
type AccessTokenResponse struct {
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
}

// UserDTO - public view of an account
type UserDTO struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	Role        models.UserRole `json:"role"`
	CompanyID   *string         `json:"company_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		CompanyID:   user.CompanyID,
		CreatedAt:   user.CreatedAt,
	}
}
