// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
)

type StoreService struct {
	db *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

type CreateStoreRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	Slug               string `json:"slug,omitempty" validate:"omitempty,min=2,max=100"`
	Description        string `json:"description,omitempty"`
	WhatsAppNumber     string `json:"whatsapp_number" validate:"required,phone"`
	ThemeColor         string `json:"theme_color,omitempty" validate:"hexcolor_opt"`
	DeliveryEnabled    bool   `json:"delivery_enabled"`
	DeliveryPriceLabel string `json:"delivery_price_label,omitempty" validate:"omitempty,max=100"`
}

type UpdateStoreRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug               *string `json:"slug,omitempty" validate:"omitempty,min=2,max=100"`
	Description        *string `json:"description,omitempty"`
	LogoURL            *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	WhatsAppNumber     *string `json:"whatsapp_number,omitempty" validate:"omitempty,phone"`
	ThemeColor         *string `json:"theme_color,omitempty" validate:"omitempty,hexcolor_opt"`
	DeliveryEnabled    *bool   `json:"delivery_enabled,omitempty"`
	DeliveryPriceLabel *string `json:"delivery_price_label,omitempty" validate:"omitempty,max=100"`
}

func (s *StoreService) CreateStore(ownerID uuid.UUID, req *CreateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	storeSlug := req.Slug
	if storeSlug == "" {
		storeSlug = req.Name
	}
	storeSlug = slug.Make(storeSlug)

	if taken, err := s.slugTaken(storeSlug, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.Conflict("store slug %q is already taken", storeSlug)
	}

	store := &models.Store{
		OwnerID:            ownerID,
		Name:               req.Name,
		Slug:               storeSlug,
		Description:        req.Description,
		WhatsAppNumber:     req.WhatsAppNumber,
		DeliveryEnabled:    req.DeliveryEnabled,
		DeliveryPriceLabel: req.DeliveryPriceLabel,
	}
	if req.ThemeColor != "" {
		store.ThemeColor = req.ThemeColor
	}

	if err := s.db.Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

func (s *StoreService) GetStore(storeID, ownerID uuid.UUID) (*models.Store, error) {
	return storeForOwner(s.db, storeID, ownerID)
}

func (s *StoreService) GetOwnerStores(ownerID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) UpdateStore(storeID, ownerID uuid.UUID, req *UpdateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	store, err := storeForOwner(s.db, storeID, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		newSlug := slug.Make(*req.Slug)
		if newSlug != store.Slug {
			if taken, err := s.slugTaken(newSlug, store.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, apperrors.Conflict("store slug %q is already taken", newSlug)
			}
			updates["slug"] = newSlug
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.WhatsAppNumber != nil {
		updates["whats_app_number"] = *req.WhatsAppNumber
	}
	if req.ThemeColor != nil {
		updates["theme_color"] = *req.ThemeColor
	}
	if req.DeliveryEnabled != nil {
		updates["delivery_enabled"] = *req.DeliveryEnabled
	}
	if req.DeliveryPriceLabel != nil {
		updates["delivery_price_label"] = *req.DeliveryPriceLabel
	}

	if len(updates) > 0 {
		if err := s.db.Model(store).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update store: %w", err)
		}
	}

	s.db.First(store, store.ID)
	return store, nil
}

// DeleteStore removes a store and, through the schema constraints, its
// catalog and orders.
func (s *StoreService) DeleteStore(storeID, ownerID uuid.UUID) error {
	store, err := storeForOwner(s.db, storeID, ownerID)
	if err != nil {
		return err
	}

	if err := s.db.Select("Categories", "Products", "Orders").Delete(store).Error; err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}

func (s *StoreService) slugTaken(storeSlug string, excludeID uuid.UUID) (bool, error) {
	var existing models.Store
	query := s.db.Where("slug = ?", storeSlug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("database error: %w", err)
}
