// Package orderrepo persists placed orders: one orders row per order and one
// order_lines row per product.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          int64     `gorm:"not null;index"`
	PurchaseOrderNumber *string
	ShippingAddress     string    `gorm:"not null"`
	Status              string    `gorm:"not null"`
	CreatedAt           time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderLineDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID string          `gorm:"primaryKey"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func headerFromDomain(placed *order.PlacedOrder, createdAt time.Time) OrderDTO {
	var po *string
	if value, ok := placed.PurchaseOrderNumber(); ok {
		po = &value
	}

	return OrderDTO{
		ID:                  placed.ID().Raw(),
		CustomerID:          placed.CustomerID(),
		PurchaseOrderNumber: po,
		ShippingAddress:     placed.ShippingAddress(),
		Status:              placed.Status().String(),
		CreatedAt:           createdAt,
	}
}

func lineFromDomain(orderID kernel.UUID, line order.LineItem) OrderLineDTO {
	return OrderLineDTO{
		OrderID:   orderID.Raw(),
		ProductID: line.ProductID(),
		Quantity:  line.Quantity(),
		UnitPrice: line.UnitPrice().Amount(),
	}
}
