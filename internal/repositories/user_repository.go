package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"jobforge_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	// FindActiveByID skips deactivated accounts.
	FindActiveByID(id string) (*models.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(email string) (*models.User, error)
	FindByRecoveryToken(token string) (*models.User, error)
	FindAllActive() ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error

	// InvalidateSessions atomically deletes the user's session record and
	// stamps the revocation clock. Every flow that must force
	// re-authentication funnels through here.
	InvalidateSessions(userID string) error

	WithTx(tx *gorm.DB) UserRepository
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) WithTx(tx *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: tx}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Company").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindActiveByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Company").
		First(&user, "id = ? AND deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Company").
		First(&user, "LOWER(email) = LOWER(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByRecoveryToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "recovery_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAllActive() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("deleted = ?", false).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) InvalidateSessions(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("session_invalidated_at", now).Error
	})
}
