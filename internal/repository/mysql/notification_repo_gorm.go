package mysql

import (
	"context"

	"gorm.io/gorm"

	"shophub-order-service/internal/domain"
	"shophub-order-service/internal/repository"
)

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepo{db: db}
}

// Append records the raw notification before it drives any transition.
// The log is append-only; reconciliation state lives on the order itself.
func (r *notificationRepo) Append(ctx context.Context, n *domain.PaymentNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}
