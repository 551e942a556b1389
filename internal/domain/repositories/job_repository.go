package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
)

// JobRepository defines job posting data operations
type JobRepository interface {
	Create(ctx context.Context, job *entities.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Job, error)
	// ListOpen returns every open job, newest first
	ListOpen(ctx context.Context) ([]*entities.Job, error)
	// CloseExpired closes open jobs whose deadline is before now and returns how many changed
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// ApplicationRepository defines job application data operations
type ApplicationRepository interface {
	Create(ctx context.Context, application *entities.Application) error
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entities.Application, error)
}
