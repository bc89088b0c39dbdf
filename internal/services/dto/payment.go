package dto

// LinkCustomerRequest links (or relinks) a professional's card. The card token
// comes from the processor's client-side tokenization, the raw card never
// touches this service.
type LinkCustomerRequest struct {
	CardToken string `json:"card_token" validate:"required"`
}

type LinkCustomerResponse struct {
	CustomerID      string `json:"customer_id"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
}

// DeductCutResponse reports the fee breakdown for a charged job.
type DeductCutResponse struct {
	Total              float64 `json:"total"`
	PlatformFee        float64 `json:"platform_fee"`
	ProfessionalAmount float64 `json:"professional_amount"`
	PaymentIntentID    string  `json:"payment_intent_id"`
	TransactionID      string  `json:"transaction_id"`
}
