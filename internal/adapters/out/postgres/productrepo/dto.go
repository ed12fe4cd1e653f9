// Package productrepo serves catalog lookups and the stock row operations the
// order placement transaction needs.
package productrepo

import (
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID    string          `gorm:"primaryKey"`
	Name  string          `gorm:"not null"`
	Stock int             `gorm:"not null"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func toDomain(dto ProductDTO) (catalog.Product, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.Product{}, err
	}

	return catalog.Product{
		ID:    dto.ID,
		Name:  dto.Name,
		Stock: dto.Stock,
		Price: price,
	}, nil
}
