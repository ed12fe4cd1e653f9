// Package catalog holds the read model of sellable products returned by catalog lookups.
package catalog

import "ordering/internal/core/domain/model/kernel"

// Product is one catalog entry with its current stock level.
type Product struct {
	ID    string
	Name  string
	Stock int
	Price kernel.Money
}

// HasStockFor reports whether quantity units can be taken from current stock.
func (p Product) HasStockFor(quantity int) bool {
	return p.Stock >= quantity
}

// Names returns the display names of products in order.
func Names(products []Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
