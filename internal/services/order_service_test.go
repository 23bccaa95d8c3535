package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shophub-order-service/internal/domain"
	"shophub-order-service/internal/mocks"
)

func TestOrderService_GetOrder(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		wantErr error
	}{
		{name: "buyer can read own order", actorID: TestUserID},
		{name: "supplier can read order placed with them", actorID: TestSupplierID},
		{name: "stranger gets not found", actorID: "99999999-9999-9999-9999-999999999999", wantErr: domain.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			repo.On("FindByID", mock.Anything, TestOrderID).
				Return(CreateMockOrder(TestOrderID, TestUserID, TestSupplierID, domain.StatusPaid), nil)

			service := NewOrderService(repo, new(mocks.MockPublisher))
			order, err := service.GetOrder(context.Background(), tt.actorID, TestOrderID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, TestOrderID, order.ID)
		})
	}
}

func TestOrderService_ListSupplierOrders(t *testing.T) {
	t.Run("status filter passed through", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		repo.On("FindBySupplier", mock.Anything, TestSupplierID, domain.StatusPaid).
			Return([]domain.Order{*CreateMockOrder(TestOrderID, TestUserID, TestSupplierID, domain.StatusPaid)}, nil)

		service := NewOrderService(repo, new(mocks.MockPublisher))
		orders, err := service.ListSupplierOrders(context.Background(), TestSupplierID, "PAID")

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("all means no filter", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		repo.On("FindBySupplier", mock.Anything, TestSupplierID, domain.OrderStatus("")).
			Return([]domain.Order{}, nil)

		service := NewOrderService(repo, new(mocks.MockPublisher))
		_, err := service.ListSupplierOrders(context.Background(), TestSupplierID, "all")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)

		service := NewOrderService(repo, new(mocks.MockPublisher))
		_, err := service.ListSupplierOrders(context.Background(), TestSupplierID, "REFUNDED")

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		repo.AssertNotCalled(t, "FindBySupplier", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("supplier marks order shipped", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)
		pub := new(mocks.MockPublisher)

		repo.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestUserID, TestSupplierID, domain.StatusPaid), nil)
		repo.On("ApplyTransition", mock.Anything, TestOrderID, domain.StatusPaid, domain.StatusShipped, false).Return(nil)
		pub.On("Publish", mock.Anything, "order.status.changed", mock.Anything).Return(nil).Maybe()

		service := NewOrderService(repo, pub)
		order, err := service.UpdateStatus(context.Background(), TestSupplierID, TestOrderID, "SHIPPED")

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusShipped, order.Status)

		time.Sleep(50 * time.Millisecond)
		repo.AssertExpectations(t)
	})

	t.Run("skipping states rejected", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)

		repo.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestUserID, TestSupplierID, domain.StatusPending), nil)

		service := NewOrderService(repo, new(mocks.MockPublisher))
		_, err := service.UpdateStatus(context.Background(), TestUserID, TestOrderID, "COMPLETED")

		var invalid *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
		repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected before lookup", func(t *testing.T) {
		repo := new(mocks.MockOrderRepository)

		service := NewOrderService(repo, new(mocks.MockPublisher))
		_, err := service.UpdateStatus(context.Background(), TestUserID, TestOrderID, "REFUNDED")

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
