package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySelection         = errors.New("no items in order")
	ErrMixedSupplierSelection = errors.New("all items must be from the same supplier in one order")
	ErrProductNotFound        = errors.New("product not found")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrSizeRequired           = errors.New("size is required for this product")
	ErrInvalidSize            = errors.New("size not available for this product")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrTerminalOrderImmutable = errors.New("order is already in a terminal status")
	ErrUnmappedExternalStatus = errors.New("unrecognized transaction status")
	// ErrStatusConflict means the guarded status update matched zero rows:
	// someone else moved the order between our read and our write.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// InsufficientStockError carries the shortfall so the checkout response can
// name the offending product.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
