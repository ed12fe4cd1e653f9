package order

import (
	"errors"
	"slices"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrPlacedOrderIsNotConstructed = errors.New("PlacedOrder must be created via NewPlacedOrder constructor")

// PlacedOrder is the committed form of a State: an order header plus its lines.
type PlacedOrder struct {
	id                  kernel.UUID
	customerID          int64
	purchaseOrderNumber string
	shippingAddress     string
	lines               []LineItem

	guard guard.ConstructorGuard
}

// NewPlacedOrder snapshots a finalizable State under the given identifier.
func NewPlacedOrder(id kernel.UUID, state State) (*PlacedOrder, error) {
	if err := errors.Join(id.Validate(), state.ValidateFinalizable()); err != nil {
		return nil, err
	}

	address, _ := state.ShippingAddress()
	po, _ := state.PurchaseOrderNumber()

	return &PlacedOrder{
		id:                  id,
		customerID:          state.CustomerID(),
		purchaseOrderNumber: po,
		shippingAddress:     address,
		lines:               state.LineItems(),
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (o *PlacedOrder) Validate() error {
	if o == nil {
		return ErrPlacedOrderIsNotConstructed
	}
	return o.guard.Validate(ErrPlacedOrderIsNotConstructed)
}

func (o *PlacedOrder) ID() kernel.UUID {
	return o.id
}

func (o *PlacedOrder) CustomerID() int64 {
	return o.customerID
}

// PurchaseOrderNumber returns the PO reference and whether one was set.
func (o *PlacedOrder) PurchaseOrderNumber() (string, bool) {
	return o.purchaseOrderNumber, o.purchaseOrderNumber != ""
}

func (o *PlacedOrder) ShippingAddress() string {
	return o.shippingAddress
}

// Status is always Confirmed: a placed order exists only once committed.
func (o *PlacedOrder) Status() Status {
	return Confirmed
}

func (o *PlacedOrder) Lines() []LineItem {
	return slices.Clone(o.lines)
}

// LinesByProduct returns the lines sorted by product identifier, the order in
// which stock rows are locked.
func (o *PlacedOrder) LinesByProduct() []LineItem {
	lines := slices.Clone(o.lines)
	slices.SortFunc(lines, func(a, b LineItem) int {
		return strings.Compare(a.ProductID(), b.ProductID())
	})
	return lines
}
