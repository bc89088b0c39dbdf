package repositories

import (
	"context"
	"errors"
	"time"

	"homepro_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentProfileNotFound = errors.New("payment profile not found")
	ErrTransactionNotFound    = errors.New("payment transaction not found")
)

type PaymentRepository interface {
	UpsertProfile(ctx context.Context, profile *models.PaymentProfile) error
	FindProfileByProfessional(ctx context.Context, professionalID string) (*models.PaymentProfile, error)

	CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error
	UpdateTransaction(ctx context.Context, tx *models.PaymentTransaction) error
	// FindActiveTransactionByJob returns the pending or paid transaction for a
	// job, if any. Failed attempts do not block a retry.
	FindActiveTransactionByJob(ctx context.Context, jobID string) (*models.PaymentTransaction, error)
	// FindLatestTransactionByJob returns the newest transaction regardless of
	// status. The charge path uses it to reuse a failed attempt's row instead
	// of colliding with its idempotency key.
	FindLatestTransactionByJob(ctx context.Context, jobID string) (*models.PaymentTransaction, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) UpsertProfile(ctx context.Context, profile *models.PaymentProfile) error {
	profile.LinkedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "professional_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_id", "payment_method_id", "linked_at", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *PaymentRepositoryImpl) FindProfileByProfessional(ctx context.Context, professionalID string) (*models.PaymentProfile, error) {
	var profile models.PaymentProfile
	err := r.db.WithContext(ctx).First(&profile, "professional_id = ?", professionalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PaymentRepositoryImpl) CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *PaymentRepositoryImpl) UpdateTransaction(ctx context.Context, tx *models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *PaymentRepositoryImpl) FindActiveTransactionByJob(ctx context.Context, jobID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND status <> ?", jobID, models.PaymentStatusFailed).
		Order("created_at DESC").
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepositoryImpl) FindLatestTransactionByJob(ctx context.Context, jobID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
