package orderrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderRepository writes through whatever *gorm.DB it was given, which
// inside a unit of work is the open transaction.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// Add inserts the order header only; lines are added one by one with AddLine.
func (r *GormOrderRepository) Add(ctx context.Context, placed *order.PlacedOrder) error {
	if err := placed.Validate(); err != nil {
		return err
	}

	dto := headerFromDomain(placed, r.now().UTC())
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) AddLine(ctx context.Context, orderID kernel.UUID, line order.LineItem) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}

	dto := lineFromDomain(orderID, line)
	return r.db.WithContext(ctx).Create(&dto).Error
}
