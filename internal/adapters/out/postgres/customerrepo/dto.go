// Package customerrepo reads customer profiles and their purchase history.
package customerrepo

import (
	"ordering/internal/core/domain/model/customer"

	"github.com/shopspring/decimal"
)

type CustomerDTO struct {
	ID                     int64  `gorm:"primaryKey;autoIncrement:false"`
	Name                   string `gorm:"not null"`
	DefaultShippingAddress string `gorm:"not null;default:''"`
	DefaultPONumber        *string
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type UsualOrderItemDTO struct {
	CustomerID int64  `gorm:"primaryKey;autoIncrement:false"`
	ProductID  string `gorm:"primaryKey"`
	Quantity   int    `gorm:"not null"`
}

func (UsualOrderItemDTO) TableName() string {
	return "usual_order_items"
}

// usualItemRow is one usual item joined with its product.
type usualItemRow struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type frequentItemRow struct {
	ProductID  string
	Name       string
	OrderCount int
}

func toDomain(dto CustomerDTO) customer.Profile {
	profile := customer.Profile{
		ID:                     dto.ID,
		Name:                   dto.Name,
		DefaultShippingAddress: dto.DefaultShippingAddress,
	}
	if dto.DefaultPONumber != nil {
		profile.DefaultPONumber = *dto.DefaultPONumber
	}
	return profile
}
