package midtrans

import (
	"context"

	"shophub-order-service/internal/domain"
)

type GatewayInterface interface {
	CreateSession(ctx context.Context, order *domain.Order, customer Customer) (*SnapSession, error)
	QueryStatus(ctx context.Context, orderID string) (*TransactionStatus, error)
	CancelSession(ctx context.Context, orderID string) error
}

var _ GatewayInterface = (*Client)(nil)
