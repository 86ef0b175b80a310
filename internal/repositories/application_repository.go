package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobforge_backend/internal/models"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")
	ErrJobNotOpen           = errors.New("job is not accepting applications")
)

type ApplicationRepository interface {
	// CreateForActiveJob inserts the application inside one transaction
	// that locks the job row, re-checks that it is still ACTIVE and that
	// no application by the same candidate exists. The composite unique
	// index on (job_id, candidate_id) backs the in-transaction check.
	CreateForActiveJob(app *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindByCandidate(candidateID string) ([]models.Application, error)
	FindByJob(jobID string) ([]models.Application, error)
	Update(app *models.Application) error
	// Delete removes the row permanently. Admin-only cleanup path.
	Delete(id string) error

	WithTx(tx *gorm.DB) ApplicationRepository
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) WithTx(tx *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: tx}
}

func (r *ApplicationRepositoryImpl) CreateForActiveJob(app *models.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "id = ?", app.JobID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		if job.Status != models.JobStatusActive {
			return ErrJobNotOpen
		}

		var count int64
		err = tx.Model(&models.Application{}).
			Where("job_id = ? AND candidate_id = ?", app.JobID, app.CandidateID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplication
		}

		return tx.Create(app).Error
	})
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByCandidate(candidateID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) Update(app *models.Application) error {
	result := r.db.Save(app)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
