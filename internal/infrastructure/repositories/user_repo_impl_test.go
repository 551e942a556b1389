package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	expiry := time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second)
	u := &entities.User{
		Name:         "Alice",
		Email:        "Alice@Example.com",
		PasswordHash: "hash",
		Role:         entities.UserRoleUser,
		IsApproved:   true,
		OTPCode:      null.StringFrom("123456"),
		OTPExpiry:    null.TimeFrom(expiry),
	}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
	assert.Equal(t, entities.UserRoleUser, byID.Role)
	assert.False(t, byID.IsVerified)
	assert.Equal(t, "123456", byID.OTPCode.String)
	assert.True(t, byID.OTPExpiry.Time.Equal(expiry))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.ConfirmOTP(ctx, id, "123456"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.ReplaceOTP(ctx, id, "123456", time.Now()), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdatePassword(ctx, id, "hash"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.ApproveEmployer(ctx, id), domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, repo, "dup@example.com", entities.UserRoleUser)
	err := repo.Create(context.Background(), &entities.User{
		Name:         "Other",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Role:         entities.UserRoleEmployer,
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserRepository_ConfirmOTP(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "otp@example.com", entities.UserRoleUser)
	require.NoError(t, repo.ReplaceOTP(ctx, u.ID, "111111", time.Now().Add(time.Minute)))

	// wrong code leaves the row untouched
	require.ErrorIs(t, repo.ConfirmOTP(ctx, u.ID, "222222"), domainerrors.ErrNotFound)
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsVerified)
	require.True(t, got.HasPendingOTP())

	require.NoError(t, repo.ConfirmOTP(ctx, u.ID, "111111"))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.False(t, got.OTPCode.Valid)
	assert.False(t, got.OTPExpiry.Valid)

	// the code is single use
	require.ErrorIs(t, repo.ConfirmOTP(ctx, u.ID, "111111"), domainerrors.ErrNotFound)
	// verified accounts never get a new code
	require.ErrorIs(t, repo.ReplaceOTP(ctx, u.ID, "333333", time.Now()), domainerrors.ErrNotFound)
}

func TestUserRepository_ReplaceOTPOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "resend@example.com", entities.UserRoleUser)
	require.NoError(t, repo.ReplaceOTP(ctx, u.ID, "111111", time.Now().Add(time.Minute)))
	require.NoError(t, repo.ReplaceOTP(ctx, u.ID, "222222", time.Now().Add(2*time.Minute)))

	require.ErrorIs(t, repo.ConfirmOTP(ctx, u.ID, "111111"), domainerrors.ErrNotFound)
	require.NoError(t, repo.ConfirmOTP(ctx, u.ID, "222222"))
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "pw@example.com", entities.UserRoleUser)
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepository_EmployerApproval(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeker := seedUser(t, repo, "seeker@example.com", entities.UserRoleUser)
	first := seedUser(t, repo, "first@example.com", entities.UserRoleEmployer)
	second := seedUser(t, repo, "second@example.com", entities.UserRoleEmployer)

	pending, err := repo.ListPendingEmployers(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	ids := []uuid.UUID{pending[0].ID, pending[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)

	require.ErrorIs(t, repo.ApproveEmployer(ctx, seeker.ID), domainerrors.ErrNotFound)
	require.NoError(t, repo.ApproveEmployer(ctx, first.ID))
	require.NoError(t, repo.ApproveEmployer(ctx, first.ID))

	pending, err = repo.ListPendingEmployers(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
