package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shophub-order-service/internal/domain"
	"shophub-order-service/internal/infra/midtrans"
	rabbit "shophub-order-service/internal/infra/rabbitmq"
	"shophub-order-service/internal/repository"
)

// StatusResult is what the status endpoint returns. When the gateway cannot
// be reached the local status still answers the request.
type StatusResult struct {
	OrderID          string                      `json:"order_id"`
	LocalStatus      domain.OrderStatus          `json:"local_status"`
	GatewayReachable bool                        `json:"gateway_reachable"`
	StatusChanged    bool                        `json:"status_changed"`
	Transaction      *midtrans.TransactionStatus `json:"transaction,omitempty"`
}

type PaymentService struct {
	orders        repository.OrderRepository
	notifications repository.NotificationRepository
	gateway       midtrans.GatewayInterface
	publisher     rabbit.PublisherInterface
}

func NewPaymentService(orders repository.OrderRepository, notifications repository.NotificationRepository, gw midtrans.GatewayInterface, pub rabbit.PublisherInterface) *PaymentService {
	return &PaymentService{
		orders:        orders,
		notifications: notifications,
		gateway:       gw,
		publisher:     pub,
	}
}

// CreateSession requests a payable hosted-checkout session for the order.
// Failure leaves the order untouched and PENDING, so the buyer can retry.
func (s *PaymentService) CreateSession(ctx context.Context, userID, orderID string, customer midtrans.Customer) (*midtrans.SnapSession, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.gateway.CreateSession(ctx, order, customer)
}

// HandleNotification processes one inbound webhook. The gateway delivers
// at-least-once, out of order, and concurrently with pull-based checks; the
// guarded transition turns all of that into exactly-once effect.
func (s *PaymentService) HandleNotification(ctx context.Context, n *domain.PaymentNotification) error {
	n.ID = uuid.NewString()
	if err := s.notifications.Append(ctx, n); err != nil {
		// The log is forensic, not load-bearing. Keep processing.
		logrus.WithField("order_id", n.OrderID).WithError(err).Warn("failed to append notification log")
	}

	target, err := domain.MapExternalStatus(n.TransactionStatus, n.FraudStatus)
	if err != nil {
		return err
	}

	// One retry on a concurrent writer: reload and converge.
	for attempt := 0; attempt < 2; attempt++ {
		order, err := s.orders.FindByID(ctx, n.OrderID)
		if err != nil {
			return err
		}

		if target == domain.StatusPending && order.Status != domain.StatusPending {
			// A pending notification only confirms an order that is still
			// pending. Arriving after settlement it is stale, not an error.
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,
				"status":   order.Status,
			}).Info("ignoring stale pending notification")
			return nil
		}

		changed, err := applyTransition(ctx, s.orders, s.publisher, order, target)
		if errors.Is(err, domain.ErrStatusConflict) {
			continue
		}
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"order_id":           order.ID,
			"transaction_status": n.TransactionStatus,
			"fraud_status":       n.FraudStatus,
			"new_status":         order.Status,
			"changed":            changed,
		}).Info("payment notification processed")
		return nil
	}
	return domain.ErrStatusConflict
}

// CheckStatus pulls the transaction status from the gateway and reconciles
// the order through the same transition path the webhook uses. A gateway
// failure degrades to the last known local status instead of erroring.
func (s *PaymentService) CheckStatus(ctx context.Context, userID, orderID string) (*StatusResult, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	ts, err := s.gateway.QueryStatus(ctx, orderID)
	if err != nil {
		logrus.WithField("order_id", orderID).WithError(err).Warn("could not reach payment gateway, using local status")
		return &StatusResult{
			OrderID:     order.ID,
			LocalStatus: order.Status,
		}, nil
	}

	result := &StatusResult{
		OrderID:          order.ID,
		LocalStatus:      order.Status,
		GatewayReachable: true,
		Transaction:      ts,
	}

	target, err := domain.MapExternalStatus(ts.TransactionStatus, ts.FraudStatus)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id":           orderID,
			"transaction_status": ts.TransactionStatus,
		}).Warn("gateway returned unmapped transaction status, order left untouched")
		return result, nil
	}

	if target == domain.StatusPending && order.Status != domain.StatusPending {
		return result, nil
	}

	changed, err := applyTransition(ctx, s.orders, s.publisher, order, target)
	if err != nil {
		// A concurrent webhook or an already-terminal order is convergence,
		// not a failure of this request.
		logrus.WithField("order_id", orderID).WithError(err).Warn("status check could not apply transition")
		return result, nil
	}
	result.LocalStatus = order.Status
	result.StatusChanged = changed
	return result, nil
}

// CancelOrder cancels at the gateway best-effort, then applies the local
// CANCELLED transition with stock restoration. A gateway failure (session
// expired, never created) must not block local cancellation.
func (s *PaymentService) CancelOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.CancelSession(ctx, orderID); err != nil {
		logrus.WithField("order_id", orderID).WithError(err).Warn("could not cancel at gateway, proceeding with local cancellation")
	}

	if _, err := applyTransition(ctx, s.orders, s.publisher, order, domain.StatusCancelled); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PaymentService) findOwned(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
