package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/email"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/internal/services/dto"
)

const recoveryTokenTTL = 30 * time.Minute

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, id auth.Identity) error
	RenewAccessToken(ctx context.Context, sessionToken string) (*dto.AccessTokenResponse, error)
	InitiateRecovery(ctx context.Context, emailAddr string) error
	CompleteRecovery(ctx context.Context, token string, newPassword string) error
}

type authService struct {
	users      repositories.UserRepository
	sessions   repositories.SessionRepository
	codec      *auth.TokenCodec
	mail       email.Provider
	sessionTTL time.Duration
}

func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	codec *auth.TokenCodec,
	mail email.Provider,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		mail:       mail,
		sessionTTL: sessionTTL,
	}
}

// SignUp registers a CANDIDATE account and signs it in immediately.
func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword.WithError(err)
	}

	if existing, err := s.users.FindByEmail(req.Email); err == nil {
		if existing.Deleted {
			return nil, apperrors.ErrEmailDeactivated
		}
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleCandidate,
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user signed up", "user_id", user.ID)
	return s.issueTokens(user)
}

// Login verifies credentials and rotates the long-lived session.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	// Credential check first so a probing caller cannot distinguish a
	// deactivated account from a wrong password without knowing the password.
	if user.Deleted {
		return nil, apperrors.ErrAccountDeactivated
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return s.issueTokens(user)
}

// Logout revokes everything at once: the session record is removed and the
// revocation clock stamped, so access tokens issued before this instant die
// together with the session.
func (s *authService) Logout(ctx context.Context, id auth.Identity) error {
	if err := s.users.InvalidateSessions(id.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "user logged out", "user_id", id.UserID)
	return nil
}

// RenewAccessToken exchanges a live session token for a fresh access token.
// The session itself is left untouched, so renewal never extends it.
func (s *authService) RenewAccessToken(ctx context.Context, sessionToken string) (*dto.AccessTokenResponse, error) {
	session, err := s.sessions.FindByToken(sessionToken)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.DeleteByToken(sessionToken)
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.users.FindByID(session.UserID)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if user.Deleted {
		return nil, apperrors.ErrAccountDeactivated
	}
	if auth.IsRevoked(session.IssuedAt, user.SessionInvalidatedAt) {
		_ = s.sessions.DeleteByToken(sessionToken)
		return nil, apperrors.ErrSessionRevoked
	}

	accessToken, err := s.codec.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AccessTokenResponse{AccessToken: accessToken, SessionToken: session.Token}, nil
}

// InitiateRecovery stores a short-lived recovery token and mails it out.
// An unknown email is answered identically to a known one.
func (s *authService) InitiateRecovery(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token := uuid.NewString()
	expires := time.Now().UTC().Add(recoveryTokenTTL)
	user.RecoveryToken = &token
	user.RecoveryTokenExpiresAt = &expires
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mail.SendRecovery(sendCtx, user.Email, token); err != nil {
			logger.Error("recovery mail delivery failed", "user_id", user.ID, "error", err)
		}
	}()

	logger.CtxInfo(ctx, "recovery initiated", "user_id", user.ID)
	return nil
}

// CompleteRecovery sets a new password and reactivates the account. A
// deactivated account comes back to life only through this path.
func (s *authService) CompleteRecovery(ctx context.Context, token string, newPassword string) error {
	if token == "" {
		return apperrors.ErrInvalidRecoveryToken
	}
	user, err := s.users.FindByRecoveryToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidRecoveryToken
		}
		return apperrors.InternalError(err)
	}
	if user.RecoveryTokenExpiresAt == nil || time.Now().UTC().After(*user.RecoveryTokenExpiresAt) {
		return apperrors.ErrInvalidRecoveryToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword.WithError(err)
	}
	if auth.CheckPasswordHash(newPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("new password must differ from the current one")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.Deleted = false
	user.RecoveryToken = nil
	user.RecoveryTokenExpiresAt = nil
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// Any outstanding credential is suspect once the password changed.
	if err := s.users.InvalidateSessions(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "recovery completed", "user_id", user.ID)
	return nil
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.codec.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	session, err := s.sessions.Replace(user.ID, s.sessionTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken:  accessToken,
		SessionToken: session.Token,
		User:         dto.NewUserDTO(user),
	}, nil
}
