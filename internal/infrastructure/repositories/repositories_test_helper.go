package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"jobboard.backend/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one private in-memory database per test keeps the unique email index isolated
	dsn := fmt.Sprintf("file:jobboard_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, AutoMigrate(db), "migrate users, jobs and applications")
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email string, role entities.UserRole) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		IsApproved:   role.ApprovedByDefault(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}
