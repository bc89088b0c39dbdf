package handlers

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	QuoteHandler        *QuoteHandler
	PaymentHandler      *PaymentHandler
	NotificationHandler *NotificationHandler
}
