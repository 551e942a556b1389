package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/domain/repositories"
	"jobboard.backend/internal/infrastructure/notifier"
	"jobboard.backend/pkg/crypto"
	"jobboard.backend/pkg/jwt"
	"jobboard.backend/pkg/logger"
	"jobboard.backend/pkg/metrics"
	redispkg "jobboard.backend/pkg/redis"
	"jobboard.backend/pkg/utils"
)

var (
	hashPassword  = crypto.HashPassword
	checkPassword = crypto.CheckPassword
	generateOTP   = crypto.GenerateOTP
)

// unknownAccountHash is compared against when login finds no account,
// so a missing email costs the same bcrypt work as a wrong password.
var unknownAccountHash = sync.OnceValue(func() string {
	h, _ := crypto.HashPassword("unknown-account-placeholder")
	return h
})

// AttemptLimiter throttles OTP attempts per key
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuthOption configures an AuthUsecase
type AuthOption func(*AuthUsecase)

// WithAttemptLimiter throttles OTP verification and resend per email
func WithAttemptLimiter(l AttemptLimiter) AuthOption {
	return func(u *AuthUsecase) { u.limiter = l }
}

// WithOTPTTL overrides how long a verification code stays valid
func WithOTPTTL(ttl time.Duration) AuthOption {
	return func(u *AuthUsecase) {
		if ttl > 0 {
			u.otpTTL = ttl
		}
	}
}

// WithAuthClock overrides the clock used for OTP expiry
func WithAuthClock(now func() time.Time) AuthOption {
	return func(u *AuthUsecase) { u.now = now }
}

// AuthUsecase handles registration, email verification, login and password changes
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	notifier   notifier.OTPNotifier
	limiter    AttemptLimiter
	otpTTL     time.Duration
	now        func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	otpNotifier notifier.OTPNotifier,
	opts ...AuthOption,
) *AuthUsecase {
	u := &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		notifier:   otpNotifier,
		otpTTL:     crypto.OTPTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkPasswordBytes rejects passwords bcrypt would refuse. Binding counts characters,
// so a multibyte password can pass it and still be too long here.
func checkPasswordBytes(field, password string) error {
	if len(password) > crypto.MaxPasswordBytes {
		return domainerrors.Validation(field, fmt.Sprintf("%s must be at most %d bytes", field, crypto.MaxPasswordBytes))
	}
	return nil
}

// Register creates an unverified account and dispatches its first verification code
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if !input.Role.Valid() || input.Role == entities.UserRoleAdmin {
		return nil, domainerrors.Validation("role", "role must be one of USER EMPLOYER")
	}
	if err := checkPasswordBytes("password", input.Password); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrEmailTaken
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         input.Role,
		IsVerified:   false,
		IsApproved:   input.Role.ApprovedByDefault(),
		OTPCode:      null.StringFrom(code),
		OTPExpiry:    null.TimeFrom(u.now().Add(u.otpTTL)),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	metrics.OTPEvent("issue", "ok")
	u.dispatchOTP(ctx, user, code)
	return user, nil
}

// VerifyOTP confirms an email address with its pending code
func (u *AuthUsecase) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) error {
	email := normalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if err := u.throttle(ctx, "verify:"+email); err != nil {
		metrics.OTPEvent("verify", "throttled")
		return err
	}

	if !user.OTPCode.Valid || subtle.ConstantTimeCompare([]byte(user.OTPCode.String), []byte(input.Code)) != 1 {
		metrics.OTPEvent("verify", "invalid")
		return domainerrors.ErrInvalidCode
	}
	if user.OTPExpired(u.now()) {
		metrics.OTPEvent("verify", "expired")
		return domainerrors.ErrOTPExpired
	}

	if err := u.userRepo.ConfirmOTP(ctx, user.ID, input.Code); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// replaced by a concurrent resend
			metrics.OTPEvent("verify", "invalid")
			return domainerrors.ErrInvalidCode
		}
		return fmt.Errorf("confirm otp: %w", err)
	}

	metrics.OTPEvent("verify", "ok")
	u.resetThrottle(ctx, "verify:"+email)
	return nil
}

// ResendOTP replaces the pending code of an unverified account
func (u *AuthUsecase) ResendOTP(ctx context.Context, input *entities.ResendOTPInput) error {
	email := normalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if user.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}

	if err := u.throttle(ctx, "resend:"+email); err != nil {
		metrics.OTPEvent("resend", "throttled")
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := u.userRepo.ReplaceOTP(ctx, user.ID, code, u.now().Add(u.otpTTL)); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// verified in the meantime
			return domainerrors.ErrAlreadyVerified
		}
		return fmt.Errorf("replace otp: %w", err)
	}

	metrics.OTPEvent("resend", "ok")
	u.dispatchOTP(ctx, user, code)
	return nil
}

// Login authenticates a user and issues a session token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			checkPassword(input.Password, unknownAccountHash())
			metrics.LoginAttempt("invalid_credentials")
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !checkPassword(input.Password, user.PasswordHash) {
		metrics.LoginAttempt("invalid_credentials")
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		metrics.LoginAttempt("email_not_verified")
		return nil, domainerrors.ErrEmailNotVerified
	}
	if user.NeedsApproval() {
		metrics.LoginAttempt("pending_approval")
		return nil, domainerrors.ErrPendingApproval
	}

	token, expiresAt, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginAttempt("ok")
	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Summary(),
	}, nil
}

// ChangePassword changes the password of an authenticated user
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if !checkPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	if err := checkPasswordBytes("newPassword", input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

// dispatchOTP is at-most-once; a failed send leaves the account pending so the user can resend
func (u *AuthUsecase) dispatchOTP(ctx context.Context, user *entities.User, code string) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		metrics.OTPEvent("dispatch", "failed")
		logger.Warn(ctx, "Failed to dispatch verification code",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.OTPEvent("dispatch", "ok")
}

func (u *AuthUsecase) throttle(ctx context.Context, key string) error {
	if u.limiter == nil {
		return nil
	}
	err := u.limiter.Allow(ctx, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redispkg.ErrRateLimited):
		return domainerrors.TooManyRequests("Too many verification attempts, try again later")
	default:
		logger.Warn(ctx, "OTP limiter unavailable, allowing attempt", zap.Error(err))
		return nil
	}
}

func (u *AuthUsecase) resetThrottle(ctx context.Context, key string) {
	if u.limiter == nil {
		return
	}
	if err := u.limiter.Reset(ctx, key); err != nil {
		logger.Warn(ctx, "Failed to reset OTP limiter", zap.Error(err))
	}
}
