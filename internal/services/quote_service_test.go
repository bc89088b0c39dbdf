package services

import (
	"context"
	"net/http"
	"testing"

	"homepro_backend/internal/models"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/services/dto"
	"homepro_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteFixture struct {
	jobRepo   *fakeJobRepo
	quoteRepo *fakeQuoteRepo
	notifRepo *fakeNotificationRepo
	service   QuoteService
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	f := &quoteFixture{
		jobRepo:   newFakeJobRepo(),
		quoteRepo: newFakeQuoteRepo(),
		notifRepo: newFakeNotificationRepo(),
	}
	f.service = NewQuoteService(f.quoteRepo, f.jobRepo, NewNotificationService(f.notifRepo))
	return f
}

func (f *quoteFixture) openJob(t *testing.T, clientID string) *models.Job {
	t.Helper()
	job := &models.Job{
		ClientID:         clientID,
		Title:            "Paint the fence",
		ProfessionNeeded: "painter",
		Status:           models.JobStatusOpen,
	}
	require.NoError(t, f.jobRepo.Create(context.Background(), job))
	return job
}

func TestSubmitQuote(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	proID := newID()
	job := f.openJob(t, clientID)

	quote, err := f.service.SubmitQuote(ctx, proID, job.ID, &dto.SubmitQuoteRequest{Price: 120})
	require.NoError(t, err)

	assert.Equal(t, models.QuoteStatusPending, quote.Status)
	assert.Equal(t, clientID, quote.ClientID)
	assert.Equal(t, job.ID, quote.JobID)

	// The client hears about the new quote.
	assert.Len(t, f.notifRepo.byType(clientID, repositories.NotificationTypeNewQuote), 1)
}

func TestSubmitQuote_JobNotOpen(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	job := f.openJob(t, newID())
	require.NoError(t, f.jobRepo.UpdateStatus(ctx, job.ID, models.JobStatusInProgress))

	_, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 50})
	assert.ErrorIs(t, err, apperrors.ErrJobNotOpen)
}

func TestSubmitQuote_DuplicateIsConflict(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	proID := newID()
	job := f.openJob(t, newID())

	_, err := f.service.SubmitQuote(ctx, proID, job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	_, err = f.service.SubmitQuote(ctx, proID, job.ID, &dto.SubmitQuoteRequest{Price: 90})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	// Only the first row exists.
	quotes, err := f.quoteRepo.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.InDelta(t, 100, quotes[0].Price, 0.001)
}

func TestUpdateQuoteStatus_Accept(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	proID := newID()
	job := f.openJob(t, clientID)

	quote, err := f.service.SubmitQuote(ctx, proID, job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	updated, err := f.service.UpdateQuoteStatus(ctx, quote.ID, clientID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusAccepted, updated.Status)

	// Acceptance assigns the professional and moves the job forward.
	storedJob, err := f.jobRepo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, storedJob.Status)
	require.NotNil(t, storedJob.ProfessionalID)
	assert.Equal(t, proID, *storedJob.ProfessionalID)
	require.NotNil(t, storedJob.AcceptedQuoteID)
	assert.Equal(t, quote.ID, *storedJob.AcceptedQuoteID)

	// The professional hears the decision.
	assert.Len(t, f.notifRepo.byType(proID, repositories.NotificationTypeQuoteStatus), 1)
}

func TestUpdateQuoteStatus_SecondAcceptConflicts(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	job := f.openJob(t, clientID)

	first, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)
	second, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 80})
	require.NoError(t, err)

	_, err = f.service.UpdateQuoteStatus(ctx, first.ID, clientID, "accepted")
	require.NoError(t, err)

	_, err = f.service.UpdateQuoteStatus(ctx, second.ID, clientID, "accepted")
	assert.ErrorIs(t, err, apperrors.ErrJobAlreadyHasAcceptedQuote)

	// The winning quote is untouched.
	storedJob, err := f.jobRepo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *storedJob.AcceptedQuoteID)
}

func TestUpdateQuoteStatus_Reject(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	job := f.openJob(t, clientID)

	quote, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	updated, err := f.service.UpdateQuoteStatus(ctx, quote.ID, clientID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusRejected, updated.Status)

	// Rejection leaves the job open and unassigned.
	storedJob, err := f.jobRepo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, storedJob.Status)
	assert.Nil(t, storedJob.AcceptedQuoteID)
}

func TestUpdateQuoteStatus_Guards(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	job := f.openJob(t, clientID)

	quote, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	// Unknown decision value.
	_, err = f.service.UpdateQuoteStatus(ctx, quote.ID, clientID, "pending")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	// Only the job's client may decide.
	_, err = f.service.UpdateQuoteStatus(ctx, quote.ID, newID(), "accepted")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Decided quotes are final.
	_, err = f.service.UpdateQuoteStatus(ctx, quote.ID, clientID, "rejected")
	require.NoError(t, err)
	_, err = f.service.UpdateQuoteStatus(ctx, quote.ID, clientID, "accepted")
	assert.ErrorIs(t, err, apperrors.ErrQuoteAlreadyDecided)
}

func TestGetQuote_PartiesOnly(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	proID := newID()
	job := f.openJob(t, clientID)

	quote, err := f.service.SubmitQuote(ctx, proID, job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	_, err = f.service.GetQuote(ctx, quote.ID, clientID)
	assert.NoError(t, err)
	_, err = f.service.GetQuote(ctx, quote.ID, proID)
	assert.NoError(t, err)

	_, err = f.service.GetQuote(ctx, quote.ID, newID())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestListJobQuotes_OwnerOnly(t *testing.T) {
	t.Parallel()

	f := newQuoteFixture(t)
	ctx := context.Background()
	clientID := newID()
	job := f.openJob(t, clientID)

	_, err := f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)
	_, err = f.service.SubmitQuote(ctx, newID(), job.ID, &dto.SubmitQuoteRequest{Price: 90})
	require.NoError(t, err)

	list, err := f.service.ListJobQuotes(ctx, job.ID, clientID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	_, err = f.service.ListJobQuotes(ctx, job.ID, newID())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}
