// Package ports defines the contracts between the ordering core and its
// collaborators: storage, catalog lookups, session persistence and the intent
// classifier.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
)

// ProductCatalog resolves free-text product phrases.
type ProductCatalog interface {
	// Find splits phrase on whitespace and returns every product whose name
	// contains each token, case-insensitively. No match yields an empty,
	// non-nil slice.
	Find(ctx context.Context, phrase string) ([]catalog.Product, error)
}
