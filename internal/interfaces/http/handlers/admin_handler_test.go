package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jobboard.backend/internal/domain/entities"
	domainerrors "jobboard.backend/internal/domain/errors"
)

type adminServiceStub struct {
	listFn    func(ctx context.Context) ([]*entities.UserSummary, error)
	approveFn func(ctx context.Context, id uuid.UUID) (*entities.UserSummary, error)
}

func (s adminServiceStub) ListPendingEmployers(ctx context.Context) ([]*entities.UserSummary, error) {
	return s.listFn(ctx)
}
func (s adminServiceStub) ApproveEmployer(ctx context.Context, id uuid.UUID) (*entities.UserSummary, error) {
	return s.approveFn(ctx, id)
}

func TestAdminHandler(t *testing.T) {
	employerID := uuid.New()
	seekerID := uuid.New()
	h := NewAdminHandler(adminServiceStub{
		listFn: func(context.Context) ([]*entities.UserSummary, error) {
			return []*entities.UserSummary{{ID: employerID, Role: entities.UserRoleEmployer}}, nil
		},
		approveFn: func(_ context.Context, id uuid.UUID) (*entities.UserSummary, error) {
			switch id {
			case employerID:
				return &entities.UserSummary{ID: id, Role: entities.UserRoleEmployer, IsApproved: true}, nil
			case seekerID:
				return nil, domainerrors.ErrNotEmployer
			}
			return nil, domainerrors.ErrNotFound
		},
	})
	r := newTestRouter()
	r.GET("/employers/pending", h.ListPendingEmployers)
	r.POST("/employers/:id/approve", h.ApproveEmployer)

	w := doJSON(r, http.MethodGet, "/employers/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["employers"], 1)

	w = doJSON(r, http.MethodPost, "/employers/"+employerID.String()+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["user"].(map[string]interface{})["isApproved"])

	w = doJSON(r, http.MethodPost, "/employers/"+seekerID.String()+"/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/employers/"+uuid.NewString()+"/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/employers/not-a-uuid/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", decodeBody(t, w)["field"])
}
