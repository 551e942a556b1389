package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text;not null"`
	Location    string     `gorm:"type:varchar(200)"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	ExpiresAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Job) TableName() string {
	return "jobs"
}

type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index"`
	CoverLetter string    `gorm:"type:text"`
	CreatedAt   time.Time
}

func (Application) TableName() string {
	return "applications"
}

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{&User{}, &Job{}, &Application{}}
}
