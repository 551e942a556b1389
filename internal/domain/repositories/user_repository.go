package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
)

// UserRepository is the credential store. Every mutation is a single-row update.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmail matches case-insensitively
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// ConfirmOTP marks the account verified and clears the OTP fields, only if
	// the stored code still equals code. ErrNotFound when nothing matched.
	ConfirmOTP(ctx context.Context, id uuid.UUID, code string) error
	// ReplaceOTP overwrites the pending code of an unverified account
	ReplaceOTP(ctx context.Context, id uuid.UUID, code string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// ApproveEmployer sets is_approved on an EMPLOYER account
	ApproveEmployer(ctx context.Context, id uuid.UUID) error
	ListPendingEmployers(ctx context.Context) ([]*entities.User, error)
}
