package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository persists placed orders. It is only used inside a UnitOfWork.
type OrderRepository interface {
	// Add writes the order header without its lines.
	Add(ctx context.Context, placed *order.PlacedOrder) error
	// AddLine writes one line of an order whose header was already added.
	AddLine(ctx context.Context, orderID kernel.UUID, line order.LineItem) error
}
