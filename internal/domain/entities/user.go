package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser     UserRole = "USER"
	UserRoleEmployer UserRole = "EMPLOYER"
	UserRoleAdmin    UserRole = "ADMIN"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

// ApprovedByDefault reports whether accounts with this role start approved.
// Employers wait for an admin.
func (r UserRole) ApprovedByDefault() bool {
	return r != UserRoleEmployer
}

// User represents an account
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	IsVerified   bool        `json:"isVerified"`
	IsApproved   bool        `json:"isApproved"`
	OTPCode      null.String `json:"-"`
	OTPExpiry    null.Time   `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// HasPendingOTP reports whether a verification window is open
func (u *User) HasPendingOTP() bool {
	return u.OTPCode.Valid && u.OTPExpiry.Valid
}

// OTPExpired reports whether the pending code expired at now.
// A code is still valid at its exact expiry instant.
func (u *User) OTPExpired(now time.Time) bool {
	return u.OTPExpiry.Valid && now.After(u.OTPExpiry.Time)
}

// NeedsApproval reports whether an unapproved employer is blocked
func (u *User) NeedsApproval() bool {
	return u.Role == UserRoleEmployer && !u.IsApproved
}

// Summary returns the public projection of the account
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsApproved: u.IsApproved,
	}
}

// UserSummary is the account view returned to clients
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	IsVerified bool      `json:"isVerified"`
	IsApproved bool      `json:"isApproved"`
}

// RegisterInput represents input for creating an account
type RegisterInput struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Email    string   `json:"email" binding:"required,email,max=255"`
	Password string   `json:"password" binding:"required,min=6,max=72"`
	Role     UserRole `json:"role" binding:"required,oneof=USER EMPLOYER"`
}

// VerifyOTPInput represents input for confirming an email address
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// ResendOTPInput represents input for requesting a fresh code
type ResendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *UserSummary `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}
