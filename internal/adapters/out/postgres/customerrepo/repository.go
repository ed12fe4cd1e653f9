package customerrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements both ports.CustomerRepository and
// ports.PurchaseHistory over the customers, orders and usual_order_items tables.
type GormCustomerRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db, now: time.Now}
}

func (r *GormCustomerRepository) Get(ctx context.Context, customerID int64) (customer.Profile, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.Profile{}, errs.NewObjectNotFoundError("customerId", customerID)
		}
		return customer.Profile{}, err
	}

	return toDomain(dto), nil
}

// MostFrequent counts, per product, the customer's orders since now-windowDays
// that contain it and returns the top one. Ties go to the product name.
func (r *GormCustomerRepository) MostFrequent(
	ctx context.Context,
	customerID int64,
	windowDays int,
) (*customer.FrequentItem, error) {
	since := r.now().UTC().AddDate(0, 0, -windowDays)

	var rows []frequentItemRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS name, COUNT(*) AS order_count
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE o.customer_id = ? AND o.created_at >= ?
		GROUP BY p.id, p.name
		ORDER BY order_count DESC, p.name
		LIMIT 1
	`, customerID, since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &customer.FrequentItem{
		ProductID: rows[0].ProductID,
		Name:      rows[0].Name,
		Count:     rows[0].OrderCount,
	}, nil
}

// UsualItems prices each usual item at the product's current price.
func (r *GormCustomerRepository) UsualItems(ctx context.Context, customerID int64) ([]order.LineItem, error) {
	var rows []usualItemRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS name, p.price AS price, u.quantity AS quantity
		FROM usual_order_items u
		JOIN products p ON p.id = u.product_id
		WHERE u.customer_id = ?
		ORDER BY p.name
	`, customerID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(rows))
	for _, row := range rows {
		price, err := kernel.NewMoney(row.Price)
		if err != nil {
			return nil, err
		}

		item, err := order.NewLineItem(row.ProductID, row.Name, row.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
