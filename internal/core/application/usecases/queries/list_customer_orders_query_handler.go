package queries

import (
	"context"
	"database/sql"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler reads order headers with their line count and
// total computed from the stored unit prices.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]ListCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.purchase_order_number,
			o.shipping_address,
			o.status,
			o.created_at,
			COUNT(l.product_id) AS lines,
			COALESCE(SUM(l.quantity * l.unit_price), 0) AS total
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.customer_id = ?
		GROUP BY o.id, o.purchase_order_number, o.shipping_address, o.status, o.created_at
		ORDER BY o.created_at DESC, o.id
		LIMIT ?
	`, query.CustomerID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListCustomerOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp      ListCustomerOrdersQueryResponse
			id        uuid.UUID
			po        sql.NullString
			createdAt time.Time
			total     string
		)

		if err = rows.Scan(&id, &po, &resp.ShippingAddress, &resp.Status, &createdAt, &resp.Lines, &total); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromRaw(id); err != nil {
			return nil, err
		}
		if resp.Total, err = kernel.MoneyFromString(total); err != nil {
			return nil, err
		}
		resp.PurchaseOrderNumber = po.String
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
