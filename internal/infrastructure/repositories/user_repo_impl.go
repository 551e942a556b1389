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

// UserRepository implements user data operations
type UserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	utils.EnsureID(&user.ID)
	now := r.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m := &models.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		IsVerified:   user.IsVerified,
		IsApproved:   user.IsApproved,
		OTPCode:      user.OTPCode.Ptr(),
		OTPExpiry:    user.OTPExpiry.Ptr(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email, ignoring case
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("LOWER(email) = LOWER(?)", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// ConfirmOTP flips is_verified and clears both OTP columns in one statement
func (r *UserRepository) ConfirmOTP(ctx context.Context, id uuid.UUID, code string) error {
	result := GetDB(ctx, r.db).
		Model(&models.User{}).
		Where("id = ? AND is_verified = ? AND otp_code = ?", id, false, code).
		Updates(map[string]interface{}{
			"is_verified": true,
			"otp_code":    gorm.Expr("NULL"),
			"otp_expiry":  gorm.Expr("NULL"),
			"updated_at":  r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ReplaceOTP writes a new code and expiry for an unverified account
func (r *UserRepository) ReplaceOTP(ctx context.Context, id uuid.UUID, code string, expiry time.Time) error {
	result := GetDB(ctx, r.db).
		Model(&models.User{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]interface{}{
			"otp_code":   code,
			"otp_expiry": expiry,
			"updated_at": r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ApproveEmployer approves an employer account. Approving twice is a no-op success.
func (r *UserRepository) ApproveEmployer(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, string(entities.UserRoleEmployer)).
		Updates(map[string]interface{}{
			"is_approved": true,
			"updated_at":  r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPendingEmployers lists employers waiting for approval, oldest first
func (r *UserRepository) ListPendingEmployers(ctx context.Context) ([]*entities.User, error) {
	var rows []models.User
	err := GetDB(ctx, r.db).
		Where("role = ? AND is_approved = ?", string(entities.UserRoleEmployer), false).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(rows))
	for i := range rows {
		users = append(users, toUserEntity(&rows[i]))
	}
	return users, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		IsVerified:   m.IsVerified,
		IsApproved:   m.IsApproved,
		OTPCode:      null.StringFromPtr(m.OTPCode),
		OTPExpiry:    null.TimeFromPtr(m.OTPExpiry),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
