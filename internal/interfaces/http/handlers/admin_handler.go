package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
	"jobboard.backend/internal/interfaces/http/response"
)

type adminService interface {
	ListPendingEmployers(ctx context.Context) ([]*entities.UserSummary, error)
	ApproveEmployer(ctx context.Context, id uuid.UUID) (*entities.UserSummary, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListPendingEmployers lists employers waiting for approval
// GET /api/v1/admin/employers/pending
func (h *AdminHandler) ListPendingEmployers(c *gin.Context) {
	employers, err := h.adminUsecase.ListPendingEmployers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employers": employers})
}

// ApproveEmployer approves an employer account
// POST /api/v1/admin/employers/:id/approve
func (h *AdminHandler) ApproveEmployer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminUsecase.ApproveEmployer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
