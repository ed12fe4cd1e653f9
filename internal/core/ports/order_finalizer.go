package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderFinalizer commits a finalizable State. On success it returns the reset
// State and the generated order identifier; on failure the input State must be
// treated as unchanged.
type OrderFinalizer interface {
	Finalize(ctx context.Context, state order.State) (order.State, kernel.UUID, error)
}
