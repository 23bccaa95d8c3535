package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"shophub-order-service/internal/domain"
	rabbit "shophub-order-service/internal/infra/rabbitmq"
	"shophub-order-service/internal/repository"
)

// applyTransition is the one path every status change goes through: webhook
// notifications, manual status checks, user cancellations and supplier
// updates. The repository guard on the pre-transition status makes replays
// and concurrent writers converge without double side effects.
func applyTransition(ctx context.Context, repo repository.OrderRepository, pub rabbit.PublisherInterface, order *domain.Order, to domain.OrderStatus) (changed bool, err error) {
	noop, err := domain.CheckTransition(order.Status, to)
	if err != nil {
		return false, err
	}
	if noop {
		return false, nil
	}

	restock := domain.RestoresStock(order.Status, to)
	if err := repo.ApplyTransition(ctx, order.ID, order.Status, to, restock); err != nil {
		return false, err
	}

	from := order.Status
	order.Status = to

	go publishStatusChanged(pub, domain.OrderStatusChangedEvent{
		OrderID:       order.ID,
		From:          from,
		To:            to,
		StockRestored: restock,
		ChangedAt:     time.Now(),
	})

	return true, nil
}

func publishStatusChanged(pub rabbit.PublisherInterface, evt domain.OrderStatusChangedEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(context.Background(), "order.status.changed", evt); err != nil {
		logrus.WithField("order_id", evt.OrderID).WithError(err).Warn("failed to publish status change event")
	}
}
