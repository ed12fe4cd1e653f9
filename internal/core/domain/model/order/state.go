package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	ErrShippingAddressIsRequired = errors.New("shipping address is required")
	ErrOrderHasNoLineItems       = errors.New("order has no line items")
	ErrDuplicateLineItem         = errors.New("line items must not share a product")
	ErrConfirmedOrderHasItems    = errors.New("confirmed order must not have line items")
)

// State is one customer's in-progress order. It is an immutable value: every
// method that changes something returns a new State and leaves the receiver as
// it was.
type State struct {
	customerID          int64
	purchaseOrderNumber string
	shippingAddress     string
	lineItems           []LineItem
	status              Status
}

// NewState returns an empty draft for the customer.
func NewState(customerID int64) State {
	return State{
		customerID: customerID,
		status:     Draft,
	}
}

// RestoreState rebuilds a State from persisted fields, enforcing the aggregate
// invariants. Empty strings mean "not set".
func RestoreState(
	customerID int64,
	purchaseOrderNumber string,
	shippingAddress string,
	lineItems []LineItem,
	status Status,
) (State, error) {
	if err := status.Validate(); err != nil {
		return State{}, err
	}

	seen := make(map[string]struct{}, len(lineItems))
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return State{}, err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return State{}, fmt.Errorf("%w: %s", ErrDuplicateLineItem, item.ProductID())
		}
		seen[item.ProductID()] = struct{}{}
	}

	if status == Confirmed && len(lineItems) > 0 {
		return State{}, ErrConfirmedOrderHasItems
	}

	return State{
		customerID:          customerID,
		purchaseOrderNumber: strings.TrimSpace(purchaseOrderNumber),
		shippingAddress:     strings.TrimSpace(shippingAddress),
		lineItems:           slices.Clone(lineItems),
		status:              status,
	}, nil
}

func (s State) CustomerID() int64 {
	return s.customerID
}

// PurchaseOrderNumber returns the PO reference and whether one is set.
func (s State) PurchaseOrderNumber() (string, bool) {
	return s.purchaseOrderNumber, s.purchaseOrderNumber != ""
}

// ShippingAddress returns the address and whether one is set.
func (s State) ShippingAddress() (string, bool) {
	return s.shippingAddress, s.shippingAddress != ""
}

func (s State) Status() Status {
	return s.status
}

// LineItems returns a copy of the items in display order.
func (s State) LineItems() []LineItem {
	return slices.Clone(s.lineItems)
}

func (s State) IsEmpty() bool {
	return len(s.lineItems) == 0
}

// Find returns the line item for productID, if present.
func (s State) Find(productID string) (LineItem, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s.lineItems[i], true
	}
	return LineItem{}, false
}

// Total is Σ quantity × unit price over all line items.
func (s State) Total() kernel.Money {
	var total kernel.Money
	for _, item := range s.lineItems {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ValidateFinalizable checks the preconditions for placing the order.
func (s State) ValidateFinalizable() error {
	var problems []error
	if _, ok := s.ShippingAddress(); !ok {
		problems = append(problems, ErrShippingAddressIsRequired)
	}
	if s.IsEmpty() {
		problems = append(problems, ErrOrderHasNoLineItems)
	}
	return errors.Join(problems...)
}

// WithShippingAddress sets the address. Blank input clears it.
func (s State) WithShippingAddress(address string) State {
	s.lineItems = slices.Clone(s.lineItems)
	s.shippingAddress = strings.TrimSpace(address)
	return s
}

// WithPurchaseOrderNumber sets the PO reference. Blank input clears it.
func (s State) WithPurchaseOrderNumber(po string) State {
	s.lineItems = slices.Clone(s.lineItems)
	s.purchaseOrderNumber = strings.TrimSpace(po)
	return s
}

// WithLineItems replaces all items wholesale, merging entries for the same product.
func (s State) WithLineItems(items []LineItem) (State, error) {
	next := s
	next.lineItems = nil
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return s, err
		}
		next = next.AddItem(item)
	}
	if len(next.lineItems) == 0 {
		next.status = s.status
	}
	return next, nil
}

// AddItem merges item into the order: an existing line for the same product has
// its quantity increased, otherwise the item is appended. The result is a Draft.
func (s State) AddItem(item LineItem) State {
	items := slices.Clone(s.lineItems)
	if i := s.indexOf(item.ProductID()); i >= 0 {
		items[i] = items[i].withQuantity(items[i].Quantity() + item.Quantity())
	} else {
		items = append(items, item)
	}
	s.lineItems = items
	s.status = Draft
	return s
}

// RemoveQuantity decrements the line for productID by quantity and returns the
// quantity left. A line reaching zero (or below) is dropped and 0 is returned.
func (s State) RemoveQuantity(productID string, quantity int) (State, int, error) {
	if quantity < 1 {
		return s, 0, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	i := s.indexOf(productID)
	if i < 0 {
		return s, 0, errs.NewObjectNotFoundError("productID", productID)
	}

	items := slices.Clone(s.lineItems)
	remaining := items[i].Quantity() - quantity
	if remaining <= 0 {
		items = slices.Delete(items, i, i+1)
		remaining = 0
	} else {
		items[i] = items[i].withQuantity(remaining)
	}

	s.lineItems = items
	return s, remaining, nil
}

// Reset returns the state that follows a successful commit: no items, no PO
// reference, status Confirmed. Customer and shipping address are kept.
func (s State) Reset() State {
	return State{
		customerID:      s.customerID,
		shippingAddress: s.shippingAddress,
		status:          Confirmed,
	}
}

func (s State) indexOf(productID string) int {
	return slices.IndexFunc(s.lineItems, func(li LineItem) bool {
		return li.ProductID() == productID
	})
}
