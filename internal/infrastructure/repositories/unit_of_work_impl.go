package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	domainRepos "jobboard.backend/internal/domain/repositories"
	"jobboard.backend/internal/infrastructure/models"
)

type txContextKey struct{}

// runTx is swapped in tests to simulate driver failures
var runTx = func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork returns a UnitOfWork backed by GORM transactions
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(txCtx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	var fnErr error
	err := runTx(u.db.WithContext(ctx), func(tx *gorm.DB) error {
		fnErr = fn(context.WithValue(ctx, txContextKey{}, tx))
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		// caller errors pass through untouched so errors.Is keeps working upstream
		return fnErr
	}
	return fmt.Errorf("transaction failed: %w", err)
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return ok
}

// GetDB returns the transaction carried by ctx, or fallback outside a unit of work
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// AutoMigrate creates or updates the users, jobs and applications tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
