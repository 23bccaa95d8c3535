package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name        string
		from        OrderStatus
		to          OrderStatus
		wantNoop    bool
		wantErr     error
		wantInvalid bool
	}{
		{name: "pending to paid", from: StatusPending, to: StatusPaid},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled},
		{name: "paid to shipped", from: StatusPaid, to: StatusShipped},
		{name: "paid to cancelled", from: StatusPaid, to: StatusCancelled},
		{name: "shipped to completed", from: StatusShipped, to: StatusCompleted},
		{name: "shipped to cancelled", from: StatusShipped, to: StatusCancelled},
		{
			name:     "same state is a no-op",
			from:     StatusPending,
			to:       StatusPending,
			wantNoop: true,
		},
		{
			name:     "terminal replay is a no-op",
			from:     StatusCancelled,
			to:       StatusCancelled,
			wantNoop: true,
		},
		{
			name:     "completed replay is a no-op",
			from:     StatusCompleted,
			to:       StatusCompleted,
			wantNoop: true,
		},
		{
			name:    "cancelled order is immutable",
			from:    StatusCancelled,
			to:      StatusPaid,
			wantErr: ErrTerminalOrderImmutable,
		},
		{
			name:    "completed order is immutable",
			from:    StatusCompleted,
			to:      StatusCancelled,
			wantErr: ErrTerminalOrderImmutable,
		},
		{
			name:        "no edge re-enters pending",
			from:        StatusPaid,
			to:          StatusPending,
			wantInvalid: true,
		},
		{
			name:        "no skipping to completed",
			from:        StatusPending,
			to:          StatusCompleted,
			wantInvalid: true,
		},
		{
			name:    "unknown status rejected",
			from:    StatusPending,
			to:      OrderStatus("REFUNDED"),
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noop, err := CheckTransition(tt.from, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantInvalid {
				var invalid *InvalidTransitionError
				assert.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.from, invalid.From)
				assert.Equal(t, tt.to, invalid.To)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantNoop, noop)
		})
	}
}

func TestRestoresStock(t *testing.T) {
	assert.True(t, RestoresStock(StatusPending, StatusCancelled))
	assert.True(t, RestoresStock(StatusPaid, StatusCancelled))
	assert.True(t, RestoresStock(StatusShipped, StatusCancelled))
	// The guard: re-cancelling never restores twice.
	assert.False(t, RestoresStock(StatusCancelled, StatusCancelled))
	assert.False(t, RestoresStock(StatusPending, StatusPaid))
	assert.False(t, RestoresStock(StatusShipped, StatusCompleted))
}

func TestItemsTotal(t *testing.T) {
	items := []OrderItem{
		{Price: 150000, Quantity: 2},
		{Price: 99000, Quantity: 1},
	}
	assert.Equal(t, int64(399000), ItemsTotal(items))
	assert.Equal(t, int64(0), ItemsTotal(nil))
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{
		ProductID:   "p-1",
		ProductName: "Denim Jacket",
		Available:   2,
		Requested:   3,
	}
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "available 2")
	assert.Contains(t, err.Error(), "requested 3")
}
