package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

const (
	DefaultOrderListLimit = 20
	MaxOrderListLimit     = 100
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery lists a customer's placed orders, newest first.
//
//	query, _ := NewListCustomerOrdersQuery(customerID, 10)
//	orders, err := handler.Handle(ctx, query)
type ListCustomerOrdersQuery struct {
	customerID int64
	limit      int

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery clamps limit to [1, MaxOrderListLimit]; zero
// selects DefaultOrderListLimit.
func NewListCustomerOrdersQuery(customerID int64, limit int) (ListCustomerOrdersQuery, error) {
	if customerID <= 0 {
		return ListCustomerOrdersQuery{}, ErrUserIDIsRequired
	}

	switch {
	case limit <= 0:
		limit = DefaultOrderListLimit
	case limit > MaxOrderListLimit:
		limit = MaxOrderListLimit
	}

	return ListCustomerOrdersQuery{
		customerID: customerID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) CustomerID() int64 {
	return q.customerID
}

func (q ListCustomerOrdersQuery) Limit() int {
	return q.limit
}

type ListCustomerOrdersQueryResponse struct {
	ID                  kernel.UUID
	PurchaseOrderNumber string
	ShippingAddress     string
	Status              string
	CreatedAt           time.Time
	Lines               int
	Total               kernel.Money
}
