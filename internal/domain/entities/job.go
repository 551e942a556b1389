package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// Job represents an employer's job posting
type Job struct {
	ID          uuid.UUID `json:"id"`
	EmployerID  uuid.UUID `json:"employerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Status      JobStatus `json:"status"`
	ExpiresAt   null.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AcceptsApplications reports whether the job is open and not past its deadline at now
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobStatusOpen {
		return false
	}
	return !j.ExpiresAt.Valid || !now.After(j.ExpiresAt.Time)
}

// Application represents a job seeker's application to a job
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	ApplicantID uuid.UUID `json:"applicantId"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateJobInput represents input for posting a job
type CreateJobInput struct {
	Title       string     `json:"title" binding:"required,min=3,max=200"`
	Description string     `json:"description" binding:"required,min=10,max=10000"`
	Location    string     `json:"location" binding:"max=200"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// ApplyInput represents input for applying to a job
type ApplyInput struct {
	CoverLetter string `json:"coverLetter" binding:"max=5000"`
}
