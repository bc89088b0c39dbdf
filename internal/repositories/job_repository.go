package repositories

import (
	"context"
	"errors"

	"homepro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound = errors.New("job not found")
	// ErrAcceptedQuoteTaken is returned when the conditional accept update
	// touched zero rows: another quote won the race or was accepted earlier.
	ErrAcceptedQuoteTaken = errors.New("job already has an accepted quote")
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]models.Job, int64, error)
	ListOpenByProfession(ctx context.Context, profession string, limit, offset int) ([]models.Job, int64, error)

	// AcceptQuote atomically records the accepted quote on the job. The WHERE
	// clause on accepted_quote_id enforces at-most-one accepted quote per job.
	AcceptQuote(ctx context.Context, jobID, quoteID, professionalID string) error

	// ReopenByClone inserts the clone and marks the original reopened in one
	// transaction so a crash cannot leave a half-reopened pair.
	ReopenByClone(ctx context.Context, original *models.Job, clone *models.Job) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepositoryImpl) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", jobID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("client_id = ?", clientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) ListOpenByProfession(ctx context.Context, profession string, limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)
	if profession != "" {
		query = query.Where("profession_needed = ?", profession)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) AcceptQuote(ctx context.Context, jobID, quoteID, professionalID string) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND accepted_quote_id IS NULL", jobID).
		Updates(map[string]interface{}{
			"accepted_quote_id": quoteID,
			"professional_id":   professionalID,
			"status":            models.JobStatusInProgress,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAcceptedQuoteTaken
	}
	return nil
}

func (r *JobRepositoryImpl) ReopenByClone(ctx context.Context, original *models.Job, clone *models.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", original.ID).
			Update("status", models.JobStatusReopened).Error
	})
}
