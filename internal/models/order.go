// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	StoreID         uuid.UUID   `json:"store_id" gorm:"type:uuid;not null;index"`
	CustomerName    string      `json:"customer_name" gorm:"size:100;not null"`
	CustomerPhone   *string     `json:"customer_phone" gorm:"size:25"`
	CustomerAddress *string     `json:"customer_address" gorm:"type:text"`
	Total           float64     `json:"total" gorm:"type:decimal(12,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots name, unit price and sku at order time so later
// product edits never change a recorded order.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	VariantID   *uuid.UUID `json:"variant_id" gorm:"type:uuid"`
	ProductName string     `json:"product_name" gorm:"size:255;not null"`
	VariantName *string    `json:"variant_name" gorm:"size:100"`
	SKU         *string    `json:"sku" gorm:"size:100"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	UnitPrice   float64    `json:"unit_price" gorm:"type:decimal(12,2);not null"`
}
