package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shophub-order-service/internal/domain"
	rabbit "shophub-order-service/internal/infra/rabbitmq"
	"shophub-order-service/internal/repository"
)

// CheckoutItem is one cart selection: what the buyer picked, not what they
// claim it costs. Prices come from the catalog at checkout time.
type CheckoutItem struct {
	ProductID string
	Quantity  int64
	Size      string
}

type CheckoutService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	publisher rabbit.PublisherInterface
}

func NewCheckoutService(orders repository.OrderRepository, products repository.ProductRepository, pub rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		products:  products,
		publisher: pub,
	}
}

// CreateOrder validates the selection, freezes product snapshots and writes
// the order, its items and the stock decrements as one transaction. The
// declared total is informational only; the stored total is recomputed from
// live catalog prices.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID string, selections []CheckoutItem, declaredTotal int64) (*domain.Order, error) {
	if len(selections) == 0 {
		return nil, domain.ErrEmptySelection
	}

	var supplierID string
	items := make([]domain.OrderItem, 0, len(selections))

	for i, sel := range selections {
		if sel.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", domain.ErrInvalidQuantity, sel.ProductID)
		}

		product, err := s.products.FindByID(ctx, sel.ProductID)
		if err != nil {
			if err == domain.ErrProductNotFound {
				return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, sel.ProductID)
			}
			return nil, err
		}

		// The first product pins the supplier; one order never spans two.
		if i == 0 {
			supplierID = product.SupplierID
		} else if product.SupplierID != supplierID {
			return nil, domain.ErrMixedSupplierSelection
		}

		if product.Stock < sel.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   sel.Quantity,
			}
		}

		if err := product.ValidateSize(sel.Size); err != nil {
			return nil, fmt.Errorf("%w: product %s", err, product.ID)
		}

		items = append(items, domain.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    sel.Quantity,
			Size:        sel.Size,
		})
	}

	total := domain.ItemsTotal(items)
	if declaredTotal != 0 && declaredTotal != total {
		logrus.WithFields(logrus.Fields{
			"declared": declaredTotal,
			"computed": total,
		}).Warn("client-declared total does not match computed total, using computed")
	}

	order := &domain.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		SupplierID: supplierID,
		TotalPrice: total,
		Status:     domain.StatusPending,
		Items:      items,
	}

	// The pre-checks above are advisory; the authoritative stock check is the
	// conditional decrement inside this transaction.
	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	go s.publishOrderCreated(order)

	return order, nil
}

func (s *CheckoutService) publishOrderCreated(order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		SupplierID: order.SupplierID,
		TotalPrice: order.TotalPrice,
		ItemCount:  len(order.Items),
		CreatedAt:  time.Now(),
	}
	if err := s.publisher.Publish(context.Background(), "order.created", evt); err != nil {
		logrus.WithField("order_id", order.ID).WithError(err).Warn("failed to publish order created event")
	}
}
