// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	StoreID     uuid.UUID  `json:"store_id" gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	Name        string     `json:"name" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	// Price is nullable: a nil price means "price on request" and the
	// product cannot go through the order flow.
	Price          *float64       `json:"price" gorm:"type:decimal(12,2)"`
	DiscountPrice  *float64       `json:"discount_price" gorm:"type:decimal(12,2)"`
	SKU            *string        `json:"sku" gorm:"size:100"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	IsActive       bool           `json:"is_active" gorm:"default:true;index"`
	TrackInventory bool           `json:"track_inventory" gorm:"default:true"`

	// Relationships
	Category  *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Inventory *Inventory       `json:"inventory,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants  []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductVariant struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	// Price is nullable; with UseParentPrice the product's discount/base
	// price applies instead.
	Price          *float64       `json:"price" gorm:"type:decimal(12,2)"`
	UseParentPrice bool           `json:"use_parent_price" gorm:"default:true"`
	Stock          int            `json:"stock" gorm:"not null;default:0"`
	UseParentStock bool           `json:"use_parent_stock" gorm:"default:false"`
	TrackInventory bool           `json:"track_inventory" gorm:"default:true"`
	SKU            *string        `json:"sku" gorm:"size:100"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
}

// Inventory is the single stock counter of a product. Variants either carry
// their own counter or share this one via UseParentStock.
type Inventory struct {
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey"`
	Stock     int       `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	UpdatedAt time.Time `json:"updated_at"`
}
