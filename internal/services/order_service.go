package services

import (
	"context"

	"shophub-order-service/internal/domain"
	rabbit "shophub-order-service/internal/infra/rabbitmq"
	"shophub-order-service/internal/repository"
)

type OrderService struct {
	orders    repository.OrderRepository
	publisher rabbit.PublisherInterface
}

func NewOrderService(orders repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{orders: orders, publisher: pub}
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && order.SupplierID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

func (s *OrderService) ListSupplierOrders(ctx context.Context, supplierID, status string) ([]domain.Order, error) {
	var filter domain.OrderStatus
	if status != "" && status != "all" {
		filter = domain.OrderStatus(status)
		if !filter.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	return s.orders.FindBySupplier(ctx, supplierID, filter)
}

// UpdateStatus is the buyer/supplier-facing manual transition: marking
// shipped, completing, or cancelling with restore. It runs through the same
// state machine and guard as gateway-driven transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID, status string) (*domain.Order, error) {
	target := domain.OrderStatus(status)
	if !target.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID && order.SupplierID != actorID {
		return nil, domain.ErrOrderNotFound
	}

	if _, err := applyTransition(ctx, s.orders, s.publisher, order, target); err != nil {
		return nil, err
	}
	return order, nil
}
