package repositories

import "context"

// UnitOfWork groups repository writes so they commit or roll back together.
// Repositories called with the ctx handed to fn join the same transaction.
// Calling Do again with that ctx runs fn inline instead of opening a second transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(txCtx context.Context) error) error
}
