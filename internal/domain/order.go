package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// validNext holds the legal forward edges. No edge re-enters PENDING.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// CheckTransition validates a requested status change. It returns noop=true
// when the order is already in the requested status; replayed notifications
// must land there instead of erroring.
func CheckTransition(from, to OrderStatus) (noop bool, err error) {
	if !to.Valid() {
		return false, ErrInvalidStatus
	}
	if from == to {
		return true, nil
	}
	if from.Terminal() {
		return false, ErrTerminalOrderImmutable
	}
	if !CanTransition(from, to) {
		return false, &InvalidTransitionError{From: from, To: to}
	}
	return false, nil
}

// RestoresStock reports whether applying the transition must give reserved
// quantities back to the ledger. The from != CANCELLED guard is the
// idempotency boundary: a replayed cancellation never restores twice.
func RestoresStock(from, to OrderStatus) bool {
	return to == StatusCancelled && from != StatusCancelled
}

type Order struct {
	ID         string      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     string      `json:"userId" gorm:"type:char(36);not null;index"`
	SupplierID string      `json:"supplierId" gorm:"type:char(36);not null;index"`
	TotalPrice int64       `json:"totalPrice" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:enum('PENDING','PAID','SHIPPED','COMPLETED','CANCELLED');default:'PENDING';index"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem freezes the product name, price and chosen size at checkout time.
// Later catalog edits never change what the buyer agreed to pay.
type OrderItem struct {
	ID          string `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID     string `json:"orderId" gorm:"type:char(36);not null;index"`
	ProductID   string `json:"productId" gorm:"type:char(36);not null"`
	ProductName string `json:"productName" gorm:"not null"`
	Price       int64  `json:"price" gorm:"not null"`
	Quantity    int64  `json:"quantity" gorm:"not null"`
	Size        string `json:"size,omitempty"`
}

// ItemsTotal is the authoritative order total; a client-declared total is
// informational only.
func ItemsTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * it.Quantity
	}
	return total
}
