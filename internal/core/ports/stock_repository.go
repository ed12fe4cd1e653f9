package ports

import "context"

// StockRepository reads and mutates the stock column of products. Writes are
// only valid inside the finalize transaction.
type StockRepository interface {
	// LockStock takes a row-level exclusive lock on the product's stock record
	// for the rest of the transaction and returns the locked stock level.
	// A missing product yields errs.ObjectNotFoundError.
	LockStock(ctx context.Context, productID string) (int, error)

	// DecrementStock subtracts quantity from the product's stock.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}
