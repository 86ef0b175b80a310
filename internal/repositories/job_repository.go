package repositories

import (
	"errors"

	"gorm.io/gorm"

	"jobforge_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	// FindByID returns any non-deleted job regardless of status.
	FindByID(id string) (*models.Job, error)
	FindActive() ([]models.Job, error)
	FindByCompany(companyID string, statuses []models.JobStatus) ([]models.Job, error)
	FindByCreator(creatorID string) ([]models.Job, error)
	Update(job *models.Job) error
	// ReassignManagement moves every job managed by fromID within the
	// company over to toID.
	ReassignManagement(companyID, fromID, toID string) (int64, error)

	WithTx(tx *gorm.DB) JobRepository
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) WithTx(tx *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: tx}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Company").
		First(&job, "id = ? AND status <> ?", id, models.JobStatusDeleted).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindActive() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Company").
		Where("status = ?", models.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByCompany(companyID string, statuses []models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.Where("company_id = ?", companyID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	} else {
		query = query.Where("status <> ?", models.JobStatusDeleted)
	}
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByCreator(creatorID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("created_by_id = ? AND status <> ?", creatorID, models.JobStatusDeleted).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Save(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ReassignManagement(companyID, fromID, toID string) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("company_id = ? AND created_by_id = ? AND status <> ?", companyID, fromID, models.JobStatusDeleted).
		Update("created_by_id", toID)
	return result.RowsAffected, result.Error
}
