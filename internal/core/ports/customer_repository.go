package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
)

// CustomerRepository loads customer profiles.
type CustomerRepository interface {
	// Get returns errs.ObjectNotFoundError when the customer does not exist.
	Get(ctx context.Context, customerID int64) (customer.Profile, error)
}
