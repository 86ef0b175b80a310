package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"jobforge_backend/internal/models"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	FindActiveByID(id string) (*models.Company, error)
	FindAllActive() ([]models.Company, error)
	Update(company *models.Company) error

	// CreateWithFounder atomically creates the company, promotes the
	// founding user to EMPLOYER and revokes their outstanding tokens so the
	// next login carries the new role.
	CreateWithFounder(company *models.Company, founder *models.User) error

	// AppointRecruiter attaches a candidate to the company as RECRUITER
	// and revokes their tokens.
	AppointRecruiter(companyID string, user *models.User) error

	// RemoveRecruiter reassigns the recruiter's managed jobs to the
	// employer, demotes the recruiter back to CANDIDATE and revokes
	// their tokens.
	RemoveRecruiter(company *models.Company, recruiter *models.User, newManagerID string) error

	// ChangeEmployer demotes the current employer to CANDIDATE, promotes
	// the successor, moves the outgoing employer's jobs to the successor
	// and revokes the outgoing employer's tokens.
	ChangeEmployer(company *models.Company, current *models.User, successor *models.User) error

	// SoftDelete marks the company deleted, soft-deletes its jobs, detaches
	// and demotes every related user and revokes all of their tokens.
	SoftDelete(company *models.Company, related []models.User) error

	WithTx(tx *gorm.DB) CompanyRepository
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) WithTx(tx *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: tx}
}

func (r *CompanyRepositoryImpl) FindActiveByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.Preload("RelatedUsers").
		First(&company, "id = ? AND deleted = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindAllActive() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Where("deleted = ?", false).Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	result := r.db.Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) CreateWithFounder(company *models.Company, founder *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		founder.Role = models.RoleEmployer
		founder.CompanyID = &company.ID
		if err := tx.Save(founder).Error; err != nil {
			return err
		}
		company.EmployerID = &founder.ID
		if err := tx.Save(company).Error; err != nil {
			return err
		}
		return revokeUserTokens(tx, founder.ID)
	})
}

func (r *CompanyRepositoryImpl) AppointRecruiter(companyID string, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user.Role = models.RoleRecruiter
		user.CompanyID = &companyID
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return revokeUserTokens(tx, user.ID)
	})
}

func (r *CompanyRepositoryImpl) RemoveRecruiter(company *models.Company, recruiter *models.User, newManagerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).
			Where("company_id = ? AND created_by_id = ?", company.ID, recruiter.ID).
			Update("created_by_id", newManagerID).Error
		if err != nil {
			return err
		}
		recruiter.Role = models.RoleCandidate
		recruiter.CompanyID = nil
		if err := tx.Save(recruiter).Error; err != nil {
			return err
		}
		return revokeUserTokens(tx, recruiter.ID)
	})
}

func (r *CompanyRepositoryImpl) ChangeEmployer(company *models.Company, current *models.User, successor *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).
			Where("company_id = ? AND created_by_id = ?", company.ID, current.ID).
			Update("created_by_id", successor.ID).Error
		if err != nil {
			return err
		}
		current.Role = models.RoleCandidate
		current.CompanyID = nil
		if err := tx.Save(current).Error; err != nil {
			return err
		}
		successor.Role = models.RoleEmployer
		successor.CompanyID = &company.ID
		if err := tx.Save(successor).Error; err != nil {
			return err
		}
		company.EmployerID = &successor.ID
		if err := tx.Save(company).Error; err != nil {
			return err
		}
		return revokeUserTokens(tx, current.ID)
	})
}

func (r *CompanyRepositoryImpl) SoftDelete(company *models.Company, related []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).
			Where("company_id = ? AND status <> ?", company.ID, models.JobStatusDeleted).
			Update("status", models.JobStatusDeleted).Error
		if err != nil {
			return err
		}
		for i := range related {
			u := &related[i]
			u.Role = models.RoleCandidate
			u.CompanyID = nil
			if err := tx.Save(u).Error; err != nil {
				return err
			}
			if err := revokeUserTokens(tx, u.ID); err != nil {
				return err
			}
		}
		company.Deleted = true
		company.EmployerID = nil
		return tx.Save(company).Error
	})
}

// revokeUserTokens mirrors UserRepository.InvalidateSessions inside an
// already-open transaction.
func revokeUserTokens(tx *gorm.DB, userID string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Update("session_invalidated_at", time.Now().UTC()).Error
}
