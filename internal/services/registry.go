package services

// ServiceContainer holds every service the application exposes to the
// handlers layer.
type ServiceContainer struct {
	AuthService         AuthService
	JobService          JobService
	QuoteService        QuoteService
	PaymentService      PaymentService
	NotificationService NotificationService
}
