package dto

import "homepro_backend/internal/models"

type SubmitQuoteRequest struct {
	Price   float64 `json:"price" validate:"required,gt=0"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,is-quote-decision"`
}

type QuoteListResponse struct {
	Quotes []models.Quote `json:"quotes"`
	Total  int            `json:"total"`
}
