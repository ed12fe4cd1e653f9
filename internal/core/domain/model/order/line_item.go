package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product inside an order.
type LineItem struct {
	productID   string
	displayName string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem validates all fields. Quantity must be at least 1.
func NewLineItem(productID, displayName string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setDisplayName(displayName),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ProductID() string {
	return li.productID
}

func (li LineItem) DisplayName() string {
	return li.displayName
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Times(li.quantity)
}

func (li LineItem) withQuantity(quantity int) LineItem {
	li.quantity = quantity
	return li
}

func (li *LineItem) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	li.productID = productID
	return nil
}

func (li *LineItem) setDisplayName(displayName string) error {
	if strings.TrimSpace(displayName) == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	li.displayName = displayName
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	li.quantity = quantity
	return nil
}
