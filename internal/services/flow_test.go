package services

import (
	"context"
	"testing"

	"homepro_backend/internal/models"
	"homepro_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarketplaceFlow walks the full happy path across the services: a client
// posts a job, a professional quotes it, the client accepts, and the platform
// deducts its cut from the professional's card.
func TestMarketplaceFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	jobRepo := newFakeJobRepo()
	quoteRepo := newFakeQuoteRepo()
	paymentRepo := newFakePaymentRepo()
	notifRepo := newFakeNotificationRepo()
	processor := newFakeProcessor()

	notificationService := NewNotificationService(notifRepo)
	authService := NewAuthService(userRepo)
	jobService := NewJobService(jobRepo, notificationService)
	quoteService := NewQuoteService(quoteRepo, jobRepo, notificationService)
	paymentService := NewPaymentService(
		paymentRepo, jobRepo, quoteRepo, userRepo,
		notificationService, processor, 0.10,
	)

	// Two accounts through the same registration path.
	client, err := authService.Register(ctx, &dto.RegisterRequest{
		Email: "client@example.com", Password: "password123", Name: "Client", Role: models.UserRoleClient,
	})
	require.NoError(t, err)
	pro, err := authService.Register(ctx, &dto.RegisterRequest{
		Email: "pro@example.com", Password: "password123", Name: "Pro", Role: models.UserRoleProfessional,
	})
	require.NoError(t, err)

	// The professional links a card before taking work.
	link, err := paymentService.LinkCustomer(ctx, pro.UserID, &dto.LinkCustomerRequest{CardToken: "tok_visa"})
	require.NoError(t, err)
	require.NotEmpty(t, link.CustomerID)

	// Client posts a job; it shows up in the professional's open listing.
	job, err := jobService.CreateJob(ctx, client.UserID, &dto.CreateJobRequest{
		Title:            "Unclog the drain",
		ProfessionNeeded: "plumber",
	})
	require.NoError(t, err)

	open, err := jobService.ListOpenJobs(ctx, "plumber", 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), open.Total)

	// Professional quotes 100.
	quote, err := quoteService.SubmitQuote(ctx, pro.UserID, job.ID, &dto.SubmitQuoteRequest{Price: 100})
	require.NoError(t, err)

	// Client accepts; the job is now assigned and in progress.
	_, err = quoteService.UpdateQuoteStatus(ctx, quote.ID, client.UserID, "accepted")
	require.NoError(t, err)

	assigned, err := jobService.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusInProgress, assigned.Status)

	// The platform takes its 10 percent.
	result, err := paymentService.DeductCut(ctx, job.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.Total, 0.001)
	assert.InDelta(t, 10.0, result.PlatformFee, 0.001)
	assert.InDelta(t, 90.0, result.ProfessionalAmount, 0.001)

	done, err := jobService.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, done.Status)

	tx, err := paymentService.GetJobTransaction(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, tx.Status)

	// The client can now leave a review.
	comment := "Quick and tidy"
	reviewed, err := jobService.ReviewJob(ctx, job.ID, client.UserID, &dto.ReviewJobRequest{Rating: 5, Comment: &comment})
	require.NoError(t, err)
	require.NotNil(t, reviewed.Rating)
	assert.Equal(t, 5, *reviewed.Rating)

	// Every actor got their notifications along the way.
	clientNotifs, _, err := notifRepo.ListByUser(ctx, client.UserID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, clientNotifs, 2) // job created, new quote

	proNotifs, _, err := notifRepo.ListByUser(ctx, pro.UserID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, proNotifs, 2) // quote accepted, fee charged
}
