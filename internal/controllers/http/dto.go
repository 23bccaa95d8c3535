package http

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
	// TotalPrice is what the client thinks the cart costs. It is logged when
	// it disagrees with the server-side total but never stored.
	TotalPrice int64 `json:"totalPrice"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
