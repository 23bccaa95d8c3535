package mysql

import (
	"errors"

	"gorm.io/gorm"

	"shophub-order-service/internal/domain"
)

// reserveStock decrements available stock with a conditional update so two
// concurrent checkouts can never both pass the stock floor. The check and
// the decrement are one statement; a read-then-write pair here would race.
func reserveStock(tx *gorm.DB, productID string, qty int64) error {
	res := tx.Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Zero rows: either the product is gone or the stock floor was hit.
	var p domain.Product
	if err := tx.Select("id", "name", "stock").First(&p, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}
	return &domain.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Available:   p.Stock,
		Requested:   qty,
	}
}

// restoreStock gives reserved quantity back. Callers own the once-per-
// cancellation guarantee via the status guard in ApplyTransition.
func restoreStock(tx *gorm.DB, productID string, qty int64) error {
	return tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
