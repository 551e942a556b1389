package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/domain/repositories"
	"jobboard.backend/pkg/logger"
)

// AdminUsecase handles employer approval
type AdminUsecase struct {
	userRepo repositories.UserRepository
}

func NewAdminUsecase(userRepo repositories.UserRepository) *AdminUsecase {
	return &AdminUsecase{userRepo: userRepo}
}

// ListPendingEmployers lists employer accounts waiting for approval
func (u *AdminUsecase) ListPendingEmployers(ctx context.Context) ([]*entities.UserSummary, error) {
	users, err := u.userRepo.ListPendingEmployers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending employers: %w", err)
	}
	out := make([]*entities.UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, user.Summary())
	}
	return out, nil
}

// ApproveEmployer lets an employer log in. Approving an approved employer succeeds.
func (u *AdminUsecase) ApproveEmployer(ctx context.Context, id uuid.UUID) (*entities.UserSummary, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Employer account not found")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if user.Role != entities.UserRoleEmployer {
		return nil, domainerrors.ErrNotEmployer
	}

	if !user.IsApproved {
		if err := u.userRepo.ApproveEmployer(ctx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("Employer account not found")
			}
			return nil, fmt.Errorf("approve employer: %w", err)
		}
		user.IsApproved = true
		logger.Info(ctx, "Employer approved", zap.String("user_id", id.String()))
	}
	return user.Summary(), nil
}
