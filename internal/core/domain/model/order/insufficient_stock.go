package order

import "fmt"

// InsufficientStockError reports that a product's locked stock could not cover
// the quantity requested for it.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.ProductName)
}

func NewInsufficientStockError(line LineItem, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:   line.ProductID(),
		ProductName: line.DisplayName(),
		Available:   available,
		Requested:   line.Quantity(),
	}
}
