package productrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockNotDecremented means the product row was missing or held less stock
// than requested when the update ran.
var ErrStockNotDecremented = errors.New("stock not decremented")

// GormStockRepository must be used on a transaction: the row lock taken by
// LockStock is held until that transaction ends.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// LockStock takes the row lock of one product (SELECT ... FOR UPDATE) and
// returns its stock as seen under that lock.
func (r *GormStockRepository) LockStock(ctx context.Context, productID string) (int, error) {
	var dto ProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "stock").
		Where("id = ?", productID).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("productId", productID)
		}
		return 0, err
	}

	return dto.Stock, nil
}

// DecrementStock never lets stock go below zero; a decrement that would is an error.
func (r *GormStockRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, nil)
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s, quantity %d", ErrStockNotDecremented, productID, quantity)
	}

	return nil
}
