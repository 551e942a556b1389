package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/infrastructure/models"
	"jobboard.backend/pkg/utils"
)

// JobRepository implements job posting data operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job posting
func (r *JobRepository) Create(ctx context.Context, job *entities.Job) error {
	utils.EnsureID(&job.ID)
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = entities.JobStatusOpen
	}

	m := &models.Job{
		ID:          job.ID,
		EmployerID:  job.EmployerID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Status:      string(job.Status),
		ExpiresAt:   job.ExpiresAt.Ptr(),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// GetByID gets a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Job, error) {
	var m models.Job
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toJobEntity(&m), nil
}

// ListOpen lists open jobs, newest first
func (r *JobRepository) ListOpen(ctx context.Context) ([]*entities.Job, error) {
	var rows []models.Job
	err := GetDB(ctx, r.db).
		Where("status = ?", string(entities.JobStatusOpen)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entities.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, toJobEntity(&rows[i]))
	}
	return jobs, nil
}

// CloseExpired closes open jobs whose deadline passed
func (r *JobRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&models.Job{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(entities.JobStatusOpen), now).
		Updates(map[string]interface{}{
			"status":     string(entities.JobStatusClosed),
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toJobEntity(m *models.Job) *entities.Job {
	return &entities.Job{
		ID:          m.ID,
		EmployerID:  m.EmployerID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Status:      entities.JobStatus(m.Status),
		ExpiresAt:   null.TimeFromPtr(m.ExpiresAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ApplicationRepository implements job application data operations
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create stores an application; a second application to the same job is ErrAlreadyExists
func (r *ApplicationRepository) Create(ctx context.Context, application *entities.Application) error {
	utils.EnsureID(&application.ID)
	if application.CreatedAt.IsZero() {
		application.CreatedAt = time.Now().UTC()
	}

	m := &models.Application{
		ID:          application.ID,
		JobID:       application.JobID,
		ApplicantID: application.ApplicantID,
		CoverLetter: application.CoverLetter,
		CreatedAt:   application.CreatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Exists reports whether applicantID already applied to jobID
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).
		Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByJob lists applications for a job, oldest first
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entities.Application, error) {
	var rows []models.Application
	err := GetDB(ctx, r.db).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	apps := make([]*entities.Application, 0, len(rows))
	for _, m := range rows {
		apps = append(apps, &entities.Application{
			ID:          m.ID,
			JobID:       m.JobID,
			ApplicantID: m.ApplicantID,
			CoverLetter: m.CoverLetter,
			CreatedAt:   m.CreatedAt,
		})
	}
	return apps, nil
}
