package repositories

import (
	"context"
	"errors"

	"homepro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrDuplicateQuote surfaces the unique (job_id, professional_id) index.
	// Uniqueness lives in the database, not in a check-then-insert.
	ErrDuplicateQuote = errors.New("quote already exists for this job and professional")
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	FindByID(ctx context.Context, id string) (*models.Quote, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Quote, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, quoteID string, status models.QuoteStatus) error
}

type QuoteRepositoryImpl struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &QuoteRepositoryImpl{db: db}
}

func (r *QuoteRepositoryImpl) Create(ctx context.Context, quote *models.Quote) error {
	err := r.db.WithContext(ctx).Create(quote).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateQuote
	}
	return err
}

func (r *QuoteRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepositoryImpl) ListByJob(ctx context.Context, jobID string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepositoryImpl) ListByProfessional(ctx context.Context, professionalID string) ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepositoryImpl) UpdateStatus(ctx context.Context, quoteID string, status models.QuoteStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuoteNotFound
	}
	return nil
}
