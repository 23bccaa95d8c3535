package domain

import (
	"encoding/json"
	"time"
)

// Product is owned by the catalog subsystem. The order service only reads
// price/stock/supplier at checkout time and mutates Stock through the ledger.
type Product struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	SupplierID string    `json:"supplierId" gorm:"type:char(36);not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	Price      int64     `json:"price" gorm:"not null"`
	Stock      int64     `json:"stock" gorm:"not null"`
	Size       string    `json:"size,omitempty"` // JSON-encoded list of size options, empty when not sized
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Sizes decodes the size option list. A product without options returns nil.
func (p *Product) Sizes() []string {
	if p.Size == "" {
		return nil
	}
	var sizes []string
	if err := json.Unmarshal([]byte(p.Size), &sizes); err != nil {
		return nil
	}
	return sizes
}

// ValidateSize checks a chosen size against the product's declared options.
func (p *Product) ValidateSize(size string) error {
	sizes := p.Sizes()
	if len(sizes) == 0 {
		return nil
	}
	if size == "" {
		return ErrSizeRequired
	}
	for _, s := range sizes {
		if s == size {
			return nil
		}
	}
	return ErrInvalidSize
}
