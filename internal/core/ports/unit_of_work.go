package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each business transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary spanning the order and stock repositories.
// Callers Begin, defer Rollback and Commit on success; Rollback after Commit is a no-op
// that returns an error the caller ignores.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction started by Begin.
	OrderRepository() OrderRepository

	// StockRepository is bound to the transaction started by Begin.
	StockRepository() StockRepository
}
