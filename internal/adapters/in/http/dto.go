package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/session"
)

type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  UserID `json:"userId"  validate:"required,gt=0"`
}

// UserID decodes from a JSON number or a decimal string such as "1". An empty
// string or null leaves it zero.
type UserID int64

func (id *UserID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s == "" {
			*id = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("userId %q: %w", s, err)
		}
		*id = UserID(v)
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = UserID(v)
	return nil
}

type ChatResponse struct {
	Reply      string         `json:"reply"`
	OrderState order.Snapshot `json:"orderState"`
}

type UserProfile struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	DefaultShippingAddress string  `json:"default_shipping_address"`
	DefaultPONumber        *string `json:"default_po_number"`
}

type SessionView struct {
	OrderState order.Snapshot  `json:"orderState"`
	History    []session.Entry `json:"history"`
}

type OrderSummary struct {
	ID                  string    `json:"id"`
	PurchaseOrderNumber string    `json:"purchaseOrderNumber,omitempty"`
	ShippingAddress     string    `json:"shippingAddress"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	Lines               int       `json:"lines"`
	Total               string    `json:"total"`
}

func userProfileFrom(p customer.Profile) UserProfile {
	resp := UserProfile{
		ID:                     p.ID,
		Name:                   p.Name,
		DefaultShippingAddress: p.DefaultShippingAddress,
	}
	if p.DefaultPONumber != "" {
		po := p.DefaultPONumber
		resp.DefaultPONumber = &po
	}
	return resp
}

func orderSummaryFrom(o queries.ListCustomerOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		ID:                  o.ID.String(),
		PurchaseOrderNumber: o.PurchaseOrderNumber,
		ShippingAddress:     o.ShippingAddress,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
		Lines:               o.Lines,
		Total:               o.Total.Amount().StringFixed(2),
	}
}
