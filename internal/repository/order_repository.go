package repository

import (
	"context"

	"shophub-order-service/internal/domain"
)

type OrderRepository interface {
	// CreateWithItems persists the order, its items and the matching stock
	// decrements as one transaction. Nothing survives a failed line.
	CreateWithItems(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindBySupplier(ctx context.Context, supplierID string, status domain.OrderStatus) ([]domain.Order, error)
	// ApplyTransition flips the status guarded on the expected current status
	// and, when restock is set, restores stock for every item in the same
	// transaction. Returns domain.ErrStatusConflict when the guard matches
	// zero rows.
	ApplyTransition(ctx context.Context, orderID string, from, to domain.OrderStatus, restock bool) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type NotificationRepository interface {
	Append(ctx context.Context, n *domain.PaymentNotification) error
}
