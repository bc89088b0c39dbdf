package models

import "strings"

type UserRole string
type UserStatus string
type JobStatus string
type QuoteStatus string
type PaymentStatus string

const (
	UserRoleClient       UserRole = "client"
	UserRoleProfessional UserRole = "professional"
	UserRoleAdmin        UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusClosed     JobStatus = "closed"
	JobStatusReopened   JobStatus = "reopened"

	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ParseJobStatus normalizes the free-form status strings the old API accepted
// ("Open", "In Progress", "Completed") into the closed enum. Unknown values
// return false.
func ParseJobStatus(raw string) (JobStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch JobStatus(normalized) {
	case JobStatusOpen, JobStatusInProgress, JobStatusCompleted, JobStatusClosed, JobStatusReopened:
		return JobStatus(normalized), true
	}
	return "", false
}

// ParseQuoteStatus accepts only the two decision values a client may set.
func ParseQuoteStatus(raw string) (QuoteStatus, bool) {
	switch QuoteStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case QuoteStatusAccepted:
		return QuoteStatusAccepted, true
	case QuoteStatusRejected:
		return QuoteStatusRejected, true
	}
	return "", false
}
