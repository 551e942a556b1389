package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/interfaces/http/middleware"
	"jobboard.backend/internal/interfaces/http/response"
)

type authService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) error
	ResendOTP(ctx context.Context, input *entities.ResendOTPInput) error
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  authService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		cookieSecure: cookieSecure,
	}
}

// Register handles account registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"userId":  user.ID,
		"message": "Registration successful. Check your email for the verification code.",
	})
}

// VerifyOTP confirms an email address
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input entities.VerifyOTPInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.VerifyOTP(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// ResendOTP issues a fresh verification code
// POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var input entities.ResendOTPInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ResendOTP(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "A new verification code has been sent"})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(time.Until(authResponse.ExpiresAt).Seconds())
	h.setTokenCookie(c, authResponse.Token, maxAge)

	response.Success(c, http.StatusOK, authResponse)
}

// Logout clears the session cookie. Tokens stay valid until they expire.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe returns the authenticated account
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user.Summary()})
}

// ChangePassword changes the password of the authenticated account
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.cookieSecure, true)
}
