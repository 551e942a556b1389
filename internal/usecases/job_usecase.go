package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/domain/repositories"
	"jobboard.backend/pkg/utils"
)

// JobUsecase handles job postings and applications
type JobUsecase struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
	uow     repositories.UnitOfWork
	now     func() time.Time
}

func NewJobUsecase(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	uow repositories.UnitOfWork,
) *JobUsecase {
	return &JobUsecase{
		jobRepo: jobRepo,
		appRepo: appRepo,
		uow:     uow,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateJob posts a job for an approved employer
func (u *JobUsecase) CreateJob(ctx context.Context, employer *entities.User, input *entities.CreateJobInput) (*entities.Job, error) {
	if employer.Role != entities.UserRoleEmployer {
		return nil, domainerrors.Forbidden("Only employers can post jobs")
	}

	job := &entities.Job{
		ID:          utils.GenerateUUIDv7(),
		EmployerID:  employer.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Status:      entities.JobStatusOpen,
	}
	if input.ExpiresAt != nil {
		if !input.ExpiresAt.After(u.now()) {
			return nil, domainerrors.Validation("expiresAt", "expiresAt must be in the future")
		}
		job.ExpiresAt = null.TimeFrom(input.ExpiresAt.UTC())
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// ListOpenJobs lists jobs accepting applications
func (u *JobUsecase) ListOpenJobs(ctx context.Context) ([]*entities.Job, error) {
	jobs, err := u.jobRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob gets a job by ID
func (u *JobUsecase) GetJob(ctx context.Context, id uuid.UUID) (*entities.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Job not found")
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Apply submits an application; a user applies to a job at most once
func (u *JobUsecase) Apply(ctx context.Context, applicant *entities.User, jobID uuid.UUID, input *entities.ApplyInput) (*entities.Application, error) {
	var application *entities.Application

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		job, err := u.jobRepo.GetByID(txCtx, jobID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("Job not found")
			}
			return err
		}
		if !job.AcceptsApplications(u.now()) {
			return domainerrors.ErrJobClosed
		}

		exists, err := u.appRepo.Exists(txCtx, jobID, applicant.ID)
		if err != nil {
			return err
		}
		if exists {
			return domainerrors.Conflict("You have already applied to this job")
		}

		application = &entities.Application{
			ID:          utils.GenerateUUIDv7(),
			JobID:       jobID,
			ApplicantID: applicant.ID,
			CoverLetter: strings.TrimSpace(input.CoverLetter),
		}
		return u.appRepo.Create(txCtx, application)
	})
	if err != nil {
		return nil, err
	}
	return application, nil
}

// ListApplications lists applications for a job owned by employer
func (u *JobUsecase) ListApplications(ctx context.Context, employer *entities.User, jobID uuid.UUID) ([]*entities.Application, error) {
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, domainerrors.Forbidden("Only the employer who posted this job can view its applications")
	}

	apps, err := u.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}
