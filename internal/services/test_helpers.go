package services

import (
	"time"

	"shophub-order-service/internal/domain"
)

func CreateMockProduct(id, supplierID, name string, price, stock int64, size string) *domain.Product {
	return &domain.Product{
		ID:         id,
		SupplierID: supplierID,
		Name:       name,
		Price:      price,
		Stock:      stock,
		Size:       size,
	}
}

func CreateMockOrder(id, userID, supplierID string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	if len(items) == 0 {
		items = []domain.OrderItem{
			{ID: id + "-item-1", OrderID: id, ProductID: TestProductID, ProductName: TestProductName, Price: TestProductPrice, Quantity: 2},
		}
	}
	return &domain.Order{
		ID:         id,
		UserID:     userID,
		SupplierID: supplierID,
		TotalPrice: domain.ItemsTotal(items),
		Status:     status,
		Items:      items,
		CreatedAt:  time.Now(),
	}
}

const (
	TestProductID    = "11111111-1111-1111-1111-111111111111"
	TestOrderID      = "22222222-2222-2222-2222-222222222222"
	TestUserID       = "33333333-3333-3333-3333-333333333333"
	TestSupplierID   = "44444444-4444-4444-4444-444444444444"
	TestProductName  = "Denim Jacket"
	TestProductPrice = int64(150000)
)
