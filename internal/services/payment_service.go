package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homepro_backend/internal/logger"
	"homepro_backend/internal/models"
	"homepro_backend/internal/payment"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/services/dto"
	"homepro_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	LinkCustomer(ctx context.Context, professionalID string, req *dto.LinkCustomerRequest) (*dto.LinkCustomerResponse, error)
	// DeductCut charges the platform fee for a completed-or-in-progress job
	// to the assigned professional's stored card. Safe to retry: one job
	// yields at most one successful charge.
	DeductCut(ctx context.Context, jobID string) (*dto.DeductCutResponse, error)
	GetJobTransaction(ctx context.Context, jobID string) (*models.PaymentTransaction, error)
}

type PaymentServiceImpl struct {
	paymentRepo         repositories.PaymentRepository
	jobRepo             repositories.JobRepository
	quoteRepo           repositories.QuoteRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	processor           payment.Processor
	feeRate             decimal.Decimal
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	jobRepo repositories.JobRepository,
	quoteRepo repositories.QuoteRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	processor payment.Processor,
	feeRate float64,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:         paymentRepo,
		jobRepo:             jobRepo,
		quoteRepo:           quoteRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		processor:           processor,
		feeRate:             decimal.NewFromFloat(feeRate),
	}
}

func (s *PaymentServiceImpl) LinkCustomer(ctx context.Context, professionalID string, req *dto.LinkCustomerRequest) (*dto.LinkCustomerResponse, error) {
	user, err := s.userRepo.FindByID(ctx, professionalID)
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotFound(err, "user", "Professional not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	customer, err := s.processor.CreateCustomer(ctx, user.Email, req.CardToken)
	if err != nil {
		return nil, s.wrapProcessorError(err)
	}

	profile := &models.PaymentProfile{
		ProfessionalID: professionalID,
		CustomerID:     customer.ID,
	}
	if customer.PaymentMethodID != "" {
		profile.PaymentMethodID = &customer.PaymentMethodID
	}

	if err := s.paymentRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LinkCustomerResponse{
		CustomerID:      customer.ID,
		PaymentMethodID: customer.PaymentMethodID,
	}, nil
}

func (s *PaymentServiceImpl) DeductCut(ctx context.Context, jobID string) (*dto.DeductCutResponse, error) {
	// Validation chain. Each step has its own tagged error so the caller can
	// tell exactly which precondition failed.
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if job.ProfessionalID == nil || *job.ProfessionalID == "" {
		return nil, apperrors.ErrNoAssignedProfessional
	}

	if _, err := s.userRepo.FindByID(ctx, *job.ProfessionalID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "Professional profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.paymentRepo.FindProfileByProfessional(ctx, *job.ProfessionalID)
	if apperrors.Is(err, repositories.ErrPaymentProfileNotFound) {
		return nil, apperrors.ErrNoPaymentProfile
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if profile.CustomerID == "" {
		return nil, apperrors.ErrNoPaymentProfile
	}

	if job.AcceptedQuoteID == nil ||
		(job.Status != models.JobStatusInProgress && job.Status != models.JobStatusCompleted) {
		return nil, apperrors.ErrNoAcceptedQuote
	}

	quote, err := s.quoteRepo.FindByID(ctx, *job.AcceptedQuoteID)
	if apperrors.Is(err, repositories.ErrQuoteNotFound) {
		return nil, apperrors.ErrNotFound(err, "quote", "Accepted quote not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cards, err := s.processor.ListCards(ctx, profile.CustomerID)
	if err != nil {
		return nil, s.wrapProcessorError(err)
	}
	if len(cards) == 0 {
		return nil, apperrors.ErrNoCardOnFile
	}

	total := decimal.NewFromFloat(quote.Price)
	fee := total.Mul(s.feeRate).Round(2)
	net := total.Sub(fee)

	tx, err := s.ensureTransaction(ctx, job, quote, total, fee, net)
	if err != nil {
		return nil, err
	}

	// A previous call already charged this job.
	if tx.Status == models.PaymentStatusPaid {
		return transactionResponse(tx), nil
	}

	charge, err := s.processor.CreateCharge(ctx, &payment.ChargeRequest{
		CustomerID:     profile.CustomerID,
		AmountCents:    fee.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:       "usd",
		Description:    fmt.Sprintf("Platform fee for job %s", job.ID),
		IdempotencyKey: tx.IdempotencyKey,
	})
	if err != nil {
		s.markFailed(ctx, tx, err)
		return nil, s.wrapProcessorError(err)
	}

	now := time.Now()
	tx.Status = models.PaymentStatusPaid
	tx.ProcessorIntentID = charge.ID
	tx.PaidAt = &now
	if err := s.paymentRepo.UpdateTransaction(ctx, tx); err != nil {
		// The charge went through; losing the status update must not
		// produce a second charge, the idempotency key still covers us.
		logger.CtxWithError(ctx, "failed to persist paid transaction", err, "transaction_id", tx.ID)
	}

	if err := s.jobRepo.UpdateStatus(ctx, job.ID, models.JobStatusCompleted); err != nil {
		logger.CtxWithError(ctx, "failed to mark job completed after charge", err, "job_id", job.ID)
	}

	s.notificationService.Notify(ctx, *job.ProfessionalID,
		repositories.NotificationTypeFeeCharged,
		"Platform fee charged",
		fmt.Sprintf("A platform fee of %s was charged for job %q", fee.StringFixed(2), job.Title),
		map[string]string{"job_id": job.ID, "transaction_id": tx.ID},
	)

	return transactionResponse(tx), nil
}

func (s *PaymentServiceImpl) GetJobTransaction(ctx context.Context, jobID string) (*models.PaymentTransaction, error) {
	tx, err := s.paymentRepo.FindActiveTransactionByJob(ctx, jobID)
	if apperrors.Is(err, repositories.ErrTransactionNotFound) {
		return nil, apperrors.ErrNotFound(err, "payment", "No transaction for this job")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tx, nil
}

// ensureTransaction finds the job's transaction or creates one. The
// idempotency key is derived from the job and quote ids, so two racing calls
// compute the same key: the second insert hits the unique index and falls
// back to the row the first one created. A failed attempt's row is reset and
// reused rather than recreated, its key is already taken.
func (s *PaymentServiceImpl) ensureTransaction(
	ctx context.Context,
	job *models.Job,
	quote *models.Quote,
	total, fee, net decimal.Decimal,
) (*models.PaymentTransaction, error) {
	existing, err := s.paymentRepo.FindLatestTransactionByJob(ctx, job.ID)
	if err == nil {
		if existing.Status == models.PaymentStatusFailed {
			existing.Status = models.PaymentStatusPending
			existing.FailureMessage = nil
			if uerr := s.paymentRepo.UpdateTransaction(ctx, existing); uerr != nil {
				return nil, apperrors.InternalError(uerr)
			}
		}
		return existing, nil
	}
	if !apperrors.Is(err, repositories.ErrTransactionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	key := uuid.NewSHA1(uuid.NameSpaceOID, []byte("deduct-cut:"+job.ID+":"+quote.ID)).String()

	tx := &models.PaymentTransaction{
		JobID:              job.ID,
		QuoteID:            quote.ID,
		ProfessionalID:     *job.ProfessionalID,
		Amount:             total.InexactFloat64(),
		PlatformFee:        fee.InexactFloat64(),
		ProfessionalAmount: net.InexactFloat64(),
		Status:             models.PaymentStatusPending,
		IdempotencyKey:     key,
	}

	if err := s.paymentRepo.CreateTransaction(ctx, tx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race: reuse the row the concurrent call inserted.
			existing, ferr := s.paymentRepo.FindLatestTransactionByJob(ctx, job.ID)
			if ferr != nil {
				return nil, apperrors.InternalError(ferr)
			}
			return existing, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return tx, nil
}

func (s *PaymentServiceImpl) markFailed(ctx context.Context, tx *models.PaymentTransaction, cause error) {
	msg := cause.Error()
	tx.Status = models.PaymentStatusFailed
	tx.FailureMessage = &msg
	if err := s.paymentRepo.UpdateTransaction(ctx, tx); err != nil {
		logger.CtxWithError(ctx, "failed to persist failed transaction", err, "transaction_id", tx.ID)
	}
}

// wrapProcessorError distinguishes processor-reported declines (surfaced with
// the processor's own message) from transport failures.
func (s *PaymentServiceImpl) wrapProcessorError(err error) *apperrors.AppError {
	var procErr *payment.ProcessorError
	if errors.As(err, &procErr) {
		return apperrors.ErrPaymentFailed(err, procErr.Message)
	}
	return apperrors.ErrExternalService(err, "payment")
}

func transactionResponse(tx *models.PaymentTransaction) *dto.DeductCutResponse {
	return &dto.DeductCutResponse{
		Total:              tx.Amount,
		PlatformFee:        tx.PlatformFee,
		ProfessionalAmount: tx.ProfessionalAmount,
		PaymentIntentID:    tx.ProcessorIntentID,
		TransactionID:      tx.ID,
	}
}
