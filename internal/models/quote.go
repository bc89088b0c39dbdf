package models

type Quote struct {
	BaseModel
	JobID          string      `gorm:"not null;index;uniqueIndex:idx_quotes_job_professional" json:"job_id"`
	ProfessionalID string      `gorm:"not null;index;uniqueIndex:idx_quotes_job_professional" json:"professional_id"`
	ClientID       string      `gorm:"not null;index" json:"client_id"`
	Price          float64     `gorm:"not null" json:"price"`
	Message        *string     `json:"message,omitempty"`
	Status         QuoteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
