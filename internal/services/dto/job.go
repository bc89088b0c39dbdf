package dto

import "homepro_backend/internal/models"

type Coordinates struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type CreateJobRequest struct {
	Title            string       `json:"title" validate:"required,min=3,max=200"`
	Description      string       `json:"description" validate:"max=5000"`
	ProfessionNeeded string       `json:"profession_needed" validate:"required,min=2,max=100"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	ImageURL         *string      `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateJobRequest is a merge-and-overwrite patch: nil fields keep their
// stored values, the image URL is replaced only when a new one is present.
type UpdateJobRequest struct {
	Title            *string      `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description      *string      `json:"description,omitempty" validate:"omitempty,max=5000"`
	ProfessionNeeded *string      `json:"profession_needed,omitempty" validate:"omitempty,min=2,max=100"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	ImageURL         *string      `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`
}

type ReviewJobRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// TransitionKind distinguishes an in-place status change from the
// clone-on-reopen path, so callers cannot mistake one for the other.
type TransitionKind string

const (
	TransitionMutated TransitionKind = "mutated"
	TransitionCloned  TransitionKind = "cloned"
)

type TransitionResult struct {
	Kind TransitionKind `json:"kind"`
	// Job is the job the caller should work with from now on: the updated
	// job for Mutated, the fresh clone for Cloned.
	Job *models.Job `json:"job"`
	// Original is set only for Cloned and holds the reopened source job.
	Original *models.Job `json:"original,omitempty"`
}

type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
}
