package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"
)

// DefaultFrequencyWindowDays is the look-back used for the greeting suggestion.
const DefaultFrequencyWindowDays = 90

// PurchaseHistory answers questions about a customer's past orders.
type PurchaseHistory interface {
	// MostFrequent returns the product ordered most often in the last
	// windowDays days, or nil when the customer has no orders in that window.
	MostFrequent(ctx context.Context, customerID int64, windowDays int) (*customer.FrequentItem, error)

	// UsualItems returns the customer's pre-defined usual order, possibly empty.
	UsualItems(ctx context.Context, customerID int64) ([]order.LineItem, error)
}
