// internal/models/category.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	StoreID uuid.UUID `json:"store_id" gorm:"type:uuid;not null;uniqueIndex:idx_categories_store_slug"`
	Name    string    `json:"name" gorm:"size:100;not null"`
	Slug    string    `json:"slug" gorm:"size:100;not null;uniqueIndex:idx_categories_store_slug"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}
