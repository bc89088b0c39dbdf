package services

import (
	"context"
	"encoding/json"
	"fmt"

	"homepro_backend/internal/models"
	"homepro_backend/internal/repositories"
	"homepro_backend/internal/services/dto"
	"homepro_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type JobService interface {
	CreateJob(ctx context.Context, clientID string, req *dto.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListClientJobs(ctx context.Context, clientID string, page, pageSize int) (*dto.JobListResponse, error)
	ListOpenJobs(ctx context.Context, profession string, page, pageSize int) (*dto.JobListResponse, error)
	UpdateJob(ctx context.Context, jobID, requesterID string, req *dto.UpdateJobRequest) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, jobID string, rawStatus string) (*dto.TransitionResult, error)
	ReviewJob(ctx context.Context, jobID, requesterID string, req *dto.ReviewJobRequest) (*models.Job, error)
}

type JobServiceImpl struct {
	jobRepo             repositories.JobRepository
	notificationService NotificationService
}

func NewJobService(
	jobRepo repositories.JobRepository,
	notificationService NotificationService,
) JobService {
	return &JobServiceImpl{
		jobRepo:             jobRepo,
		notificationService: notificationService,
	}
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, clientID string, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		ClientID:         clientID,
		Title:            req.Title,
		Description:      req.Description,
		ProfessionNeeded: req.ProfessionNeeded,
		Status:           models.JobStatusOpen,
		ImageURL:         req.ImageURL,
	}

	if req.Coordinates != nil {
		coords, err := marshalCoordinates(req.Coordinates)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Coordinates = coords
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notificationService.Notify(ctx, clientID,
		repositories.NotificationTypeJobCreated,
		"Job posted",
		fmt.Sprintf("Your job %q is now open for quotes", job.Title),
		map[string]string{"job_id": job.ID},
	)

	return job, nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if apperrors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err, "job", "Job not found")
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) ListClientJobs(ctx context.Context, clientID string, page, pageSize int) (*dto.JobListResponse, error) {
	offset := (page - 1) * pageSize
	jobs, total, err := s.jobRepo.ListByClient(ctx, clientID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.JobListResponse{Jobs: jobs, Total: total}, nil
}

func (s *JobServiceImpl) ListOpenJobs(ctx context.Context, profession string, page, pageSize int) (*dto.JobListResponse, error) {
	offset := (page - 1) * pageSize
	jobs, total, err := s.jobRepo.ListOpenByProfession(ctx, profession, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.JobListResponse{Jobs: jobs, Total: total}, nil
}

// UpdateJob merges the patch into the stored job. Absent fields keep their
// values; the image URL is replaced only when a new one arrived. Last writer
// wins, there is no version check.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, jobID, requesterID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.ProfessionNeeded != nil {
		job.ProfessionNeeded = *req.ProfessionNeeded
	}
	if req.ImageURL != nil {
		job.ImageURL = req.ImageURL
	}
	if req.Coordinates != nil {
		coords, err := marshalCoordinates(req.Coordinates)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Coordinates = coords
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// UpdateJobStatus handles every status transition. A request for "open" is a
// reopen: the job is never switched back to open in place, it is cloned into
// a fresh open job while the original becomes reopened. Every other value
// overwrites the status directly.
func (s *JobServiceImpl) UpdateJobStatus(ctx context.Context, jobID string, rawStatus string) (*dto.TransitionResult, error) {
	status, ok := models.ParseJobStatus(rawStatus)
	if !ok {
		return nil, apperrors.ErrInvalidStatus("job", fmt.Sprintf("Unknown job status %q", rawStatus))
	}

	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if status == models.JobStatusOpen {
		clone := job.CloneForReopen()
		if err := s.jobRepo.ReopenByClone(ctx, job, clone); err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Status = models.JobStatusReopened

		return &dto.TransitionResult{
			Kind:     dto.TransitionCloned,
			Job:      clone,
			Original: job,
		}, nil
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, "job", "Job not found")
		}
		return nil, apperrors.InternalError(err)
	}
	job.Status = status

	return &dto.TransitionResult{
		Kind: dto.TransitionMutated,
		Job:  job,
	}, nil
}

func (s *JobServiceImpl) ReviewJob(ctx context.Context, jobID, requesterID string, req *dto.ReviewJobRequest) (*models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if job.Status != models.JobStatusCompleted {
		return nil, apperrors.ErrJobNotCompleted
	}

	job.Rating = &req.Rating
	job.Comment = req.Comment

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func marshalCoordinates(coords *dto.Coordinates) (datatypes.JSON, error) {
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coordinates: %w", err)
	}
	return datatypes.JSON(raw), nil
}
