package services

import (
	"context"
	"sort"
	"time"

	"homepro_backend/internal/models"
	"homepro_backend/internal/payment"
	"homepro_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the behavior the GORM
// implementations get from the database: generated ids, unique indexes
// reported as duplicates, conditional updates that touch zero rows.

func newID() string {
	return uuid.NewString()
}

// --- jobs ---

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = newID()
	}
	job.CreatedAt = time.Now()
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, jobID string, status models.JobStatus) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (r *fakeJobRepo) ListByClient(_ context.Context, clientID string, limit, offset int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, job := range r.jobs {
		if job.ClientID == clientID {
			out = append(out, *job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginateJobs(out, limit, offset), int64(len(out)), nil
}

func (r *fakeJobRepo) ListOpenByProfession(_ context.Context, profession string, limit, offset int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, job := range r.jobs {
		if job.Status != models.JobStatusOpen {
			continue
		}
		if profession != "" && job.ProfessionNeeded != profession {
			continue
		}
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginateJobs(out, limit, offset), int64(len(out)), nil
}

func paginateJobs(jobs []models.Job, limit, offset int) []models.Job {
	if offset >= len(jobs) {
		return nil
	}
	end := offset + limit
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[offset:end]
}

func (r *fakeJobRepo) AcceptQuote(_ context.Context, jobID, quoteID, professionalID string) error {
	job, ok := r.jobs[jobID]
	if !ok || job.AcceptedQuoteID != nil {
		return repositories.ErrAcceptedQuoteTaken
	}
	job.AcceptedQuoteID = &quoteID
	job.ProfessionalID = &professionalID
	job.Status = models.JobStatusInProgress
	return nil
}

func (r *fakeJobRepo) ReopenByClone(_ context.Context, original *models.Job, clone *models.Job) error {
	stored, ok := r.jobs[original.ID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	if clone.ID == "" {
		clone.ID = newID()
	}
	clone.CreatedAt = time.Now()
	cloneCopy := *clone
	r.jobs[clone.ID] = &cloneCopy
	stored.Status = models.JobStatusReopened
	return nil
}

// --- quotes ---

type fakeQuoteRepo struct {
	quotes map[string]*models.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[string]*models.Quote)}
}

func (r *fakeQuoteRepo) Create(_ context.Context, quote *models.Quote) error {
	for _, q := range r.quotes {
		if q.JobID == quote.JobID && q.ProfessionalID == quote.ProfessionalID {
			return repositories.ErrDuplicateQuote
		}
	}
	if quote.ID == "" {
		quote.ID = newID()
	}
	quote.CreatedAt = time.Now()
	stored := *quote
	r.quotes[quote.ID] = &stored
	return nil
}

func (r *fakeQuoteRepo) FindByID(_ context.Context, id string) (*models.Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, repositories.ErrQuoteNotFound
	}
	copied := *quote
	return &copied, nil
}

func (r *fakeQuoteRepo) ListByJob(_ context.Context, jobID string) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range r.quotes {
		if q.JobID == jobID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeQuoteRepo) ListByProfessional(_ context.Context, professionalID string) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range r.quotes {
		if q.ProfessionalID == professionalID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, quoteID string, status models.QuoteStatus) error {
	quote, ok := r.quotes[quoteID]
	if !ok {
		return repositories.ErrQuoteNotFound
	}
	quote.Status = status
	return nil
}

// --- users ---

type fakeUserRepo struct {
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	copied := *rt
	return &copied, nil
}

func (r *fakeUserRepo) DeleteRefreshToken(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteUserRefreshTokens(_ context.Context, userID string) error {
	for key, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *fakeUserRepo) CleanExpiredRefreshTokens(_ context.Context) (int64, error) {
	var removed int64
	now := time.Now()
	for key, rt := range r.tokens {
		if rt.ExpiresAt.Before(now) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}

// --- payments ---

type fakePaymentRepo struct {
	profiles     map[string]*models.PaymentProfile
	transactions []*models.PaymentTransaction
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{profiles: make(map[string]*models.PaymentProfile)}
}

func (r *fakePaymentRepo) UpsertProfile(_ context.Context, profile *models.PaymentProfile) error {
	if existing, ok := r.profiles[profile.ProfessionalID]; ok {
		profile.ID = existing.ID
	} else if profile.ID == "" {
		profile.ID = newID()
	}
	profile.LinkedAt = time.Now()
	stored := *profile
	r.profiles[profile.ProfessionalID] = &stored
	return nil
}

func (r *fakePaymentRepo) FindProfileByProfessional(_ context.Context, professionalID string) (*models.PaymentProfile, error) {
	profile, ok := r.profiles[professionalID]
	if !ok {
		return nil, repositories.ErrPaymentProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakePaymentRepo) CreateTransaction(_ context.Context, tx *models.PaymentTransaction) error {
	for _, existing := range r.transactions {
		if existing.IdempotencyKey == tx.IdempotencyKey {
			return gorm.ErrDuplicatedKey
		}
	}
	if tx.ID == "" {
		tx.ID = newID()
	}
	tx.CreatedAt = time.Now()
	stored := *tx
	r.transactions = append(r.transactions, &stored)
	return nil
}

func (r *fakePaymentRepo) UpdateTransaction(_ context.Context, tx *models.PaymentTransaction) error {
	for i, existing := range r.transactions {
		if existing.ID == tx.ID {
			stored := *tx
			stored.CreatedAt = existing.CreatedAt
			r.transactions[i] = &stored
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

func (r *fakePaymentRepo) FindActiveTransactionByJob(_ context.Context, jobID string) (*models.PaymentTransaction, error) {
	return r.findByJob(jobID, false)
}

func (r *fakePaymentRepo) FindLatestTransactionByJob(_ context.Context, jobID string) (*models.PaymentTransaction, error) {
	return r.findByJob(jobID, true)
}

func (r *fakePaymentRepo) findByJob(jobID string, includeFailed bool) (*models.PaymentTransaction, error) {
	var latest *models.PaymentTransaction
	for _, tx := range r.transactions {
		if tx.JobID != jobID {
			continue
		}
		if !includeFailed && tx.Status == models.PaymentStatusFailed {
			continue
		}
		if latest == nil || tx.CreatedAt.After(latest.CreatedAt) {
			latest = tx
		}
	}
	if latest == nil {
		return nil, repositories.ErrTransactionNotFound
	}
	copied := *latest
	return &copied, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = newID()
	}
	notification.CreatedAt = time.Now()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, notificationID, userID string) error {
	for _, n := range r.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteReadOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*models.Notification
	var removed int64
	for _, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return removed, nil
}

func (r *fakeNotificationRepo) byType(userID, notificationType string) []*models.Notification {
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && n.Type == notificationType {
			out = append(out, n)
		}
	}
	return out
}

// --- payment processor ---

type fakeProcessor struct {
	customers map[string]*payment.Customer
	cards     map[string][]payment.Card

	chargeErr   error
	charges     []*payment.ChargeRequest
	customerErr error
	listErr     error
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		customers: make(map[string]*payment.Customer),
		cards:     make(map[string][]payment.Card),
	}
}

func (p *fakeProcessor) CreateCustomer(_ context.Context, email, cardToken string) (*payment.Customer, error) {
	if p.customerErr != nil {
		return nil, p.customerErr
	}
	customer := &payment.Customer{
		ID:              "cus_" + newID(),
		Email:           email,
		PaymentMethodID: "pm_" + cardToken,
	}
	p.customers[customer.ID] = customer
	p.cards[customer.ID] = []payment.Card{{ID: "pm_" + cardToken, Brand: "visa", Last4: "4242"}}
	return customer, nil
}

func (p *fakeProcessor) ListCards(_ context.Context, customerID string) ([]payment.Card, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.cards[customerID], nil
}

func (p *fakeProcessor) CreateCharge(_ context.Context, req *payment.ChargeRequest) (*payment.Charge, error) {
	if p.chargeErr != nil {
		return nil, p.chargeErr
	}
	p.charges = append(p.charges, req)
	return &payment.Charge{
		ID:          "ch_" + newID(),
		Status:      "succeeded",
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	}, nil
}
