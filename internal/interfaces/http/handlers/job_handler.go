package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/interfaces/http/middleware"
	"jobboard.backend/internal/interfaces/http/response"
)

type jobService interface {
	CreateJob(ctx context.Context, employer *entities.User, input *entities.CreateJobInput) (*entities.Job, error)
	ListOpenJobs(ctx context.Context) ([]*entities.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*entities.Job, error)
	Apply(ctx context.Context, applicant *entities.User, jobID uuid.UUID, input *entities.ApplyInput) (*entities.Application, error)
	ListApplications(ctx context.Context, employer *entities.User, jobID uuid.UUID) ([]*entities.Application, error)
}

// JobHandler handles job posting endpoints
type JobHandler struct {
	jobUsecase jobService
}

func NewJobHandler(jobUsecase jobService) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase}
}

// ListJobs lists open jobs
// GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobUsecase.ListOpenJobs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob gets a job
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobUsecase.GetJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": job})
}

// CreateJob posts a job
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	employer, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.CreateJobInput
	if !bindJSON(c, &input) {
		return
	}

	job, err := h.jobUsecase.CreateJob(c.Request.Context(), employer, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"job": job})
}

// Apply applies to a job
// POST /api/v1/jobs/:id/apply
func (h *JobHandler) Apply(c *gin.Context) {
	applicant, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.ApplyInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	application, err := h.jobUsecase.Apply(c.Request.Context(), applicant, jobID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"application": application})
}

// ListApplications lists applications to the employer's job
// GET /api/v1/jobs/:id/applications
func (h *JobHandler) ListApplications(c *gin.Context) {
	employer, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.jobUsecase.ListApplications(c.Request.Context(), employer, jobID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps})
}
