package domain

import "time"

type OrderCreatedEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	SupplierID string    `json:"supplierId"`
	TotalPrice int64     `json:"totalPrice"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID       string      `json:"orderId"`
	From          OrderStatus `json:"from"`
	To            OrderStatus `json:"to"`
	StockRestored bool        `json:"stockRestored"`
	ChangedAt     time.Time   `json:"changedAt"`
}
