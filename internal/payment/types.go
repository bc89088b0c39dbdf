package payment

import "fmt"

// Customer is the processor-side identity for a professional.
type Customer struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
}

// Card is a stored payment method as reported by the processor.
type Card struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

// ChargeRequest asks the processor to charge a stored card. AmountCents avoids
// float drift on the wire; the idempotency key makes retries safe.
type ChargeRequest struct {
	CustomerID     string `json:"customer_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	IdempotencyKey string `json:"-"`
}

// Charge is the processor's record of a completed or attempted charge.
type Charge struct {
	ID          string `json:"id"`
	Status      string `json:"status"` // "succeeded" | "failed"
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// ProcessorError is a failure the processor itself reported (card declined,
// unknown customer). Transport failures are returned as plain errors instead.
type ProcessorError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error %s: %s", e.Code, e.Message)
}
