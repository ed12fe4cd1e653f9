package order

import (
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Snapshot is the serialized form of State shared by session stores and the Turn API.
type Snapshot struct {
	CustomerID          int64              `json:"customerId"`
	PurchaseOrderNumber *string            `json:"purchaseOrderNumber"`
	ShippingAddress     *string            `json:"shippingAddress"`
	LineItems           []LineItemSnapshot `json:"lineItems"`
	Status              string             `json:"status"`
}

type LineItemSnapshot struct {
	ProductID   string          `json:"productId"`
	DisplayName string          `json:"displayName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Snapshot captures the state. Unset optional fields become null.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		CustomerID: s.customerID,
		LineItems:  make([]LineItemSnapshot, 0, len(s.lineItems)),
		Status:     s.status.String(),
	}
	if po, ok := s.PurchaseOrderNumber(); ok {
		snap.PurchaseOrderNumber = &po
	}
	if addr, ok := s.ShippingAddress(); ok {
		snap.ShippingAddress = &addr
	}
	for _, item := range s.lineItems {
		snap.LineItems = append(snap.LineItems, LineItemSnapshot{
			ProductID:   item.ProductID(),
			DisplayName: item.DisplayName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
		})
	}
	return snap
}

// FromSnapshot rebuilds and validates a State.
func FromSnapshot(snap Snapshot) (State, error) {
	status, err := ParseStatus(snap.Status)
	if err != nil {
		return State{}, err
	}

	items := make([]LineItem, 0, len(snap.LineItems))
	for _, li := range snap.LineItems {
		price, priceErr := kernel.NewMoney(li.UnitPrice)
		if priceErr != nil {
			return State{}, priceErr
		}
		item, itemErr := NewLineItem(li.ProductID, li.DisplayName, li.Quantity, price)
		if itemErr != nil {
			return State{}, itemErr
		}
		items = append(items, item)
	}

	return RestoreState(snap.CustomerID, deref(snap.PurchaseOrderNumber), deref(snap.ShippingAddress), items, status)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
