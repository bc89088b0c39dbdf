package services

import (
	"context"
	"fmt"

	"homepro_backend/internal/models"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/services/dto"
	"homepro_backend/pkg/apperrors"
)

type QuoteService interface {
	SubmitQuote(ctx context.Context, professionalID, jobID string, req *dto.SubmitQuoteRequest) (*models.Quote, error)
	GetQuote(ctx context.Context, quoteID, requesterID string) (*models.Quote, error)
	ListJobQuotes(ctx context.Context, jobID, requesterID string) (*dto.QuoteListResponse, error)
	ListProfessionalQuotes(ctx context.Context, professionalID string) (*dto.QuoteListResponse, error)
	UpdateQuoteStatus(ctx context.Context, quoteID, requesterID string, rawStatus string) (*models.Quote, error)
}

type QuoteServiceImpl struct {
	quoteRepo           repositories.QuoteRepository
	jobRepo             repositories.JobRepository
	notificationService NotificationService
}

func NewQuoteService(
	quoteRepo repositories.QuoteRepository,
	jobRepo repositories.JobRepository,
	notificationService NotificationService,
) QuoteService {
	return &QuoteServiceImpl{
		quoteRepo:           quoteRepo,
		jobRepo:             jobRepo,
		notificationService: notificationService,
	}
}

// SubmitQuote inserts a pending quote. The unique (job_id, professional_id)
// index makes a second submission fail no matter how the requests interleave.
func (s *QuoteServiceImpl) SubmitQuote(ctx context.Context, professionalID, jobID string, req *dto.SubmitQuoteRequest) (*models.Quote, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	quote := &models.Quote{
		JobID:          jobID,
		ProfessionalID: professionalID,
		ClientID:       job.ClientID,
		Price:          req.Price,
		Message:        req.Message,
		Status:         models.QuoteStatusPending,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateQuote) {
			return nil, apperrors.ErrDuplicateQuote
		}
		return nil, apperrors.InternalError(err)
	}

	s.notificationService.Notify(ctx, job.ClientID,
		repositories.NotificationTypeNewQuote,
		"New quote received",
		fmt.Sprintf("A professional quoted %.2f on %q", quote.Price, job.Title),
		map[string]string{"job_id": job.ID, "quote_id": quote.ID},
	)

	return quote, nil
}

func (s *QuoteServiceImpl) GetQuote(ctx context.Context, quoteID, requesterID string) (*models.Quote, error) {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if apperrors.Is(err, repositories.ErrQuoteNotFound) {
		return nil, apperrors.ErrNotFound(err, "quote", "Quote not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Only the two parties to the quote may read it.
	if quote.ProfessionalID != requesterID && quote.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return quote, nil
}

func (s *QuoteServiceImpl) ListJobQuotes(ctx context.Context, jobID, requesterID string) (*dto.QuoteListResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if job.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	quotes, err := s.quoteRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.QuoteListResponse{Quotes: quotes, Total: len(quotes)}, nil
}

func (s *QuoteServiceImpl) ListProfessionalQuotes(ctx context.Context, professionalID string) (*dto.QuoteListResponse, error) {
	quotes, err := s.quoteRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.QuoteListResponse{Quotes: quotes, Total: len(quotes)}, nil
}

// UpdateQuoteStatus applies the client's accept/reject decision. Acceptance
// runs through a conditional update on the job so only one quote can ever win;
// the losing request gets a conflict, not a silent overwrite.
func (s *QuoteServiceImpl) UpdateQuoteStatus(ctx context.Context, quoteID, requesterID string, rawStatus string) (*models.Quote, error) {
	status, ok := models.ParseQuoteStatus(rawStatus)
	if !ok {
		return nil, apperrors.ErrInvalidStatus("quote", fmt.Sprintf("Status must be 'accepted' or 'rejected', got %q", rawStatus))
	}

	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if apperrors.Is(err, repositories.ErrQuoteNotFound) {
		return nil, apperrors.ErrNotFound(err, "quote", "Quote not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if quote.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if quote.Status != models.QuoteStatusPending {
		return nil, apperrors.ErrQuoteAlreadyDecided
	}

	if status == models.QuoteStatusAccepted {
		err := s.jobRepo.AcceptQuote(ctx, quote.JobID, quote.ID, quote.ProfessionalID)
		if apperrors.Is(err, repositories.ErrAcceptedQuoteTaken) {
			return nil, apperrors.ErrJobAlreadyHasAcceptedQuote
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	quote.Status = status

	s.notificationService.Notify(ctx, quote.ProfessionalID,
		repositories.NotificationTypeQuoteStatus,
		"Quote "+string(status),
		fmt.Sprintf("Your quote of %.2f was %s", quote.Price, status),
		map[string]string{"job_id": quote.JobID, "quote_id": quote.ID},
	)

	return quote, nil
}
