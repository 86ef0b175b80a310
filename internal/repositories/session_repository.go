package repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobforge_backend/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the single rotating long-lived session per user.
type SessionRepository interface {
	// Replace atomically removes any existing session for the user and
	// creates a fresh one, so at most one live record per user can exist.
	// Concurrent replacements resolve last-writer-wins; no state where two
	// records survive is possible.
	Replace(userID string, ttl time.Duration) (*models.Session, error)
	FindByToken(token string) (*models.Session, error)
	// DeleteForUser is idempotent; deleting an absent session is not an error.
	DeleteForUser(userID string) error
	DeleteByToken(token string) error
	// DeleteExpired removes all sessions past their expiry, returning the count.
	DeleteExpired() (int64, error)

	WithTx(tx *gorm.DB) SessionRepository
}

type SessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

func (r *SessionRepositoryImpl) WithTx(tx *gorm.DB) SessionRepository {
	return &SessionRepositoryImpl{db: tx}
}

func (r *SessionRepositoryImpl) Replace(userID string, ttl time.Duration) (*models.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepositoryImpl) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepositoryImpl) DeleteForUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (r *SessionRepositoryImpl) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

func (r *SessionRepositoryImpl) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now().UTC()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// generateSessionToken returns 256 bits from crypto/rand, hex encoded.
// A v4 UUID would carry only 122 random bits, short of the required entropy.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
