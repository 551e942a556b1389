package usecases

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/domain/repositories"
	"jobboard.backend/pkg/jwt"
	"jobboard.backend/pkg/metrics"
)

// Policy is the role and account-state requirement of an operation
type Policy struct {
	// Roles permitted; empty permits any role
	Roles []entities.UserRole
	// RequireApproved blocks employers an admin has not approved yet
	RequireApproved bool
}

// AnyRole admits every verified account
var AnyRole = Policy{}

func (p Policy) permits(role entities.UserRole) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

// AuthGate turns a bearer token into an authorized account or a failure kind
type AuthGate struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthGate creates a new authorization gate
func NewAuthGate(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthGate {
	return &AuthGate{userRepo: userRepo, jwtService: jwtService}
}

// Authorize validates token and checks the freshly loaded account against policy.
// Failures are ErrUnauthorized, ErrAccountNotFound or ErrForbidden, in that order.
func (g *AuthGate) Authorize(ctx context.Context, token string, policy Policy) (*entities.User, error) {
	if token == "" {
		metrics.GateDecision("unauthenticated")
		return nil, domainerrors.ErrUnauthorized
	}
	claims, err := g.jwtService.ValidateToken(token)
	if err != nil {
		metrics.GateDecision("unauthenticated")
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := g.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.GateDecision("account_not_found")
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	if !policy.permits(user.Role) || !user.IsVerified {
		metrics.GateDecision("forbidden")
		return nil, domainerrors.ErrForbidden
	}
	if policy.RequireApproved && user.NeedsApproval() {
		metrics.GateDecision("forbidden")
		return nil, domainerrors.ErrForbidden
	}

	metrics.GateDecision("authorized")
	return user, nil
}
