// internal/models/store.go
package models

import (
	"github.com/google/uuid"
)

type Store struct {
	BaseModel
	OwnerID            uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name               string    `json:"name" gorm:"size:100;not null"`
	Slug               string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description        string    `json:"description" gorm:"type:text"`
	LogoURL            string    `json:"logo_url" gorm:"size:500"`
	ThemeColor         string    `json:"theme_color" gorm:"size:20;default:'#25D366'"`
	WhatsAppNumber     string    `json:"whatsapp_number" gorm:"size:25;not null"`
	DeliveryEnabled    bool      `json:"delivery_enabled" gorm:"default:false"`
	DeliveryPriceLabel string    `json:"delivery_price_label" gorm:"size:100"`

	// Relationships
	Owner      User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Products   []Product  `json:"products,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Orders     []Order    `json:"orders,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}
