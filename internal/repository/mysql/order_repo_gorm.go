package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shophub-order-service/internal/domain"
	"shophub-order-service/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return err
			}
			if err := reserveStock(tx, order.Items[i].ProductID, order.Items[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) FindBySupplier(ctx context.Context, supplierID string, status domain.OrderStatus) ([]domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items").Where("supplier_id = ?", supplierID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Order
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// ApplyTransition is the single write path for order status. The guarded
// update and the stock restoration commit or roll back together, so a crash
// can never leave an order cancelled without its stock back.
func (r *orderRepo) ApplyTransition(ctx context.Context, orderID string, from, to domain.OrderStatus, restock bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", orderID, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusConflict
		}
		if !restock {
			return nil
		}

		var items []domain.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}
		for _, it := range items {
			if err := restoreStock(tx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}
