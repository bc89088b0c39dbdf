package models

import (
	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	ClientID          string         `gorm:"not null;index" json:"client_id"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `json:"description"`
	ProfessionNeeded  string         `gorm:"not null;index" json:"profession_needed"`
	Status            JobStatus      `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ProfessionalID    *string        `gorm:"index" json:"professional_id,omitempty"`
	AcceptedQuoteID   *string        `gorm:"index" json:"accepted_quote_id,omitempty"`
	Coordinates       datatypes.JSON `gorm:"type:jsonb" json:"coordinates,omitempty"` // {"lat": ..., "lng": ...}
	ImageURL          *string        `json:"image_url,omitempty"`
	Rating            *int           `json:"rating,omitempty"`
	Comment           *string        `json:"comment,omitempty"`
	ReopenedFromJobID *string        `gorm:"index" json:"reopened_from_job_id,omitempty"`
}

// CloneForReopen builds the fresh job created by a reopen request. The clone
// carries none of the assignment state: no professional, no accepted quote,
// no review.
func (j *Job) CloneForReopen() *Job {
	return &Job{
		ClientID:          j.ClientID,
		Title:             j.Title,
		Description:       j.Description,
		ProfessionNeeded:  j.ProfessionNeeded,
		Status:            JobStatusOpen,
		Coordinates:       j.Coordinates,
		ImageURL:          j.ImageURL,
		ReopenedFromJobID: &j.ID,
	}
}
