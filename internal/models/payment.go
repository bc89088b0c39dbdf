package models

import "time"

// PaymentProfile links a professional to a customer identity at the payment
// processor. Relinking a card overwrites the previous method, there is no
// versioning.
type PaymentProfile struct {
	BaseModel
	ProfessionalID  string  `gorm:"not null;uniqueIndex" json:"professional_id"`
	CustomerID      string  `gorm:"not null" json:"customer_id"`
	PaymentMethodID *string `json:"payment_method_id,omitempty"`
	LinkedAt        time.Time
}

// PaymentTransaction records one platform-fee charge attempt for a job. The
// idempotency key is generated once per job and reused on retries so the
// processor never sees two distinct charges for the same work.
type PaymentTransaction struct {
	BaseModel
	JobID              string        `gorm:"not null;index" json:"job_id"`
	QuoteID            string        `gorm:"not null" json:"quote_id"`
	ProfessionalID     string        `gorm:"not null;index" json:"professional_id"`
	Amount             float64       `gorm:"not null" json:"amount"`
	PlatformFee        float64       `gorm:"not null" json:"platform_fee"`
	ProfessionalAmount float64       `gorm:"not null" json:"professional_amount"`
	Status             PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IdempotencyKey     string        `gorm:"not null;uniqueIndex" json:"-"`
	ProcessorIntentID  string        `json:"processor_intent_id,omitempty"`
	FailureMessage     *string       `json:"failure_message,omitempty"`
	PaidAt             *time.Time    `json:"paid_at,omitempty"`
}
