// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/config"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
)

type ProductService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewProductService(db *gorm.DB, cfg *config.Config) *ProductService {
	return &ProductService{db: db, cfg: cfg}
}

type CreateProductRequest struct {
	Name           string     `json:"name" validate:"required,min=2,max=255"`
	Description    string     `json:"description,omitempty"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	DiscountPrice  *float64   `json:"discount_price,omitempty" validate:"omitempty,gt=0"`
	SKU            *string    `json:"sku,omitempty" validate:"omitempty,max=100"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Images         []string   `json:"images,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	TrackInventory *bool      `json:"track_inventory,omitempty"`
	InitialStock   *int       `json:"initial_stock,omitempty" validate:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description    *string    `json:"description,omitempty"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	ClearPrice     bool       `json:"clear_price,omitempty"`
	DiscountPrice  *float64   `json:"discount_price,omitempty" validate:"omitempty,gt=0"`
	ClearDiscount  bool       `json:"clear_discount,omitempty"`
	SKU            *string    `json:"sku,omitempty" validate:"omitempty,max=100"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	ClearCategory  bool       `json:"clear_category,omitempty"`
	Images         []string   `json:"images,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	TrackInventory *bool      `json:"track_inventory,omitempty"`
}

type CreateVariantRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=100"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	UseParentPrice *bool    `json:"use_parent_price,omitempty"`
	Stock          int      `json:"stock" validate:"min=0"`
	UseParentStock bool     `json:"use_parent_stock"`
	TrackInventory *bool    `json:"track_inventory,omitempty"`
	SKU            *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Images         []string `json:"images,omitempty"`
}

type UpdateVariantRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ClearPrice     bool     `json:"clear_price,omitempty"`
	UseParentPrice *bool    `json:"use_parent_price,omitempty"`
	Stock          *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	UseParentStock *bool    `json:"use_parent_stock,omitempty"`
	TrackInventory *bool    `json:"track_inventory,omitempty"`
	SKU            *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Images         []string `json:"images,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	StoreID    uuid.UUID
	CategoryID *uuid.UUID
	OnlyActive bool
}

func (s *ProductService) CreateProduct(storeID, ownerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if err := validatePricing(req.Price, req.DiscountPrice); err != nil {
		return nil, err
	}

	if len(req.Images) > s.cfg.Storefront.MaxProductImages {
		return nil, apperrors.Validation("a product can have at most %d images", s.cfg.Storefront.MaxProductImages)
	}

	if _, err := storeForOwner(s.db, storeID, ownerID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.categoryBelongsToStore(*req.CategoryID, storeID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		StoreID:        storeID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		SKU:            req.SKU,
		Images:         pqStringArray(req.Images),
		IsActive:       true,
		TrackInventory: true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.TrackInventory != nil {
		product.TrackInventory = *req.TrackInventory
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		stock := 0
		if req.InitialStock != nil {
			stock = *req.InitialStock
		}
		inventory := &models.Inventory{ProductID: product.ID, Stock: stock}
		if err := tx.Create(inventory).Error; err != nil {
			return fmt.Errorf("failed to create inventory: %w", err)
		}
		product.Inventory = inventory

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProduct(productID, ownerID uuid.UUID) (*models.Product, error) {
	return s.productForOwner(productID, ownerID, true)
}

func (s *ProductService) UpdateProduct(productID, ownerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if len(req.Images) > s.cfg.Storefront.MaxProductImages {
		return nil, apperrors.Validation("a product can have at most %d images", s.cfg.Storefront.MaxProductImages)
	}

	product, err := s.productForOwner(productID, ownerID, false)
	if err != nil {
		return nil, err
	}

	// Resolve the price pair the update would leave behind before writing.
	newPrice := product.Price
	if req.ClearPrice {
		newPrice = nil
	} else if req.Price != nil {
		newPrice = req.Price
	}
	newDiscount := product.DiscountPrice
	if req.ClearDiscount {
		newDiscount = nil
	} else if req.DiscountPrice != nil {
		newDiscount = req.DiscountPrice
	}
	if err := validatePricing(newPrice, newDiscount); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ClearPrice {
		updates["price"] = nil
	} else if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ClearDiscount {
		updates["discount_price"] = nil
	} else if req.DiscountPrice != nil {
		updates["discount_price"] = *req.DiscountPrice
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.ClearCategory {
		updates["category_id"] = nil
	} else if req.CategoryID != nil {
		if err := s.categoryBelongsToStore(*req.CategoryID, product.StoreID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Images != nil {
		updates["images"] = pqStringArray(req.Images)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.TrackInventory != nil {
		updates["track_inventory"] = *req.TrackInventory
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.productForOwner(productID, ownerID, true)
}

func (s *ProductService) DeleteProduct(productID, ownerID uuid.UUID) error {
	product, err := s.productForOwner(productID, ownerID, false)
	if err != nil {
		return err
	}

	if err := s.db.Select("Inventory", "Variants").Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// SetInventory overwrites the product's base stock counter. Used by the
// dashboard; the order flow is the only other writer.
func (s *ProductService) SetInventory(productID, ownerID uuid.UUID, stock int) (*models.Inventory, error) {
	if stock < 0 {
		return nil, apperrors.Validation("stock cannot be negative")
	}

	product, err := s.productForOwner(productID, ownerID, false)
	if err != nil {
		return nil, err
	}

	inventory := &models.Inventory{ProductID: product.ID, Stock: stock}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Inventory{}).
			Where("product_id = ?", product.ID).
			Update("stock", stock)
		if res.Error != nil {
			return fmt.Errorf("failed to set stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(inventory).Error; err != nil {
				return fmt.Errorf("failed to create inventory: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inventory, nil
}

// SearchProducts serves both the dashboard list and the public
// GET /products endpoint; products come back with inventory and variants
// nested for resolver consumption.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("store_id = ?", params.StoreID).
		Preload("Inventory").Preload("Variants").Preload("Category")

	if params.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) AddVariant(productID, ownerID uuid.UUID, req *CreateVariantRequest) (*models.ProductVariant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if len(req.Images) > s.cfg.Storefront.MaxVariantImages {
		return nil, apperrors.Validation("a variant can have at most %d images", s.cfg.Storefront.MaxVariantImages)
	}

	product, err := s.productForOwner(productID, ownerID, false)
	if err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID:      product.ID,
		Name:           req.Name,
		Price:          req.Price,
		UseParentPrice: true,
		Stock:          req.Stock,
		UseParentStock: req.UseParentStock,
		TrackInventory: true,
		SKU:            req.SKU,
		Images:         pqStringArray(req.Images),
	}
	if req.UseParentPrice != nil {
		variant.UseParentPrice = *req.UseParentPrice
	} else if req.Price != nil {
		variant.UseParentPrice = false
	}
	if req.TrackInventory != nil {
		variant.TrackInventory = *req.TrackInventory
	}

	if err := s.db.Create(variant).Error; err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	return variant, nil
}

func (s *ProductService) UpdateVariant(variantID, ownerID uuid.UUID, req *UpdateVariantRequest) (*models.ProductVariant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if len(req.Images) > s.cfg.Storefront.MaxVariantImages {
		return nil, apperrors.Validation("a variant can have at most %d images", s.cfg.Storefront.MaxVariantImages)
	}

	variant, err := s.variantForOwner(variantID, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ClearPrice {
		updates["price"] = nil
	} else if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.UseParentPrice != nil {
		updates["use_parent_price"] = *req.UseParentPrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.UseParentStock != nil {
		updates["use_parent_stock"] = *req.UseParentStock
	}
	if req.TrackInventory != nil {
		updates["track_inventory"] = *req.TrackInventory
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Images != nil {
		updates["images"] = pqStringArray(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(variant).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update variant: %w", err)
		}
	}

	s.db.First(variant, variant.ID)
	return variant, nil
}

func (s *ProductService) DeleteVariant(variantID, ownerID uuid.UUID) error {
	variant, err := s.variantForOwner(variantID, ownerID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(variant).Error; err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	return nil
}

// StoreOwned confirms the caller owns the store before a product listing.
func (s *ProductService) StoreOwned(storeID, ownerID uuid.UUID) (*models.Store, error) {
	return storeForOwner(s.db, storeID, ownerID)
}

// Helpers

func (s *ProductService) productForOwner(productID, ownerID uuid.UUID, preload bool) (*models.Product, error) {
	query := s.db.Joins("JOIN stores ON stores.id = products.store_id").
		Where("products.id = ? AND stores.owner_id = ?", productID, ownerID)
	if preload {
		query = query.Preload("Inventory").Preload("Variants").Preload("Category")
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) variantForOwner(variantID, ownerID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := s.db.Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("product_variants.id = ? AND stores.owner_id = ?", variantID, ownerID).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("variant")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &variant, nil
}

func (s *ProductService) categoryBelongsToStore(categoryID, storeID uuid.UUID) error {
	var category models.Category
	if err := s.db.Where("id = ? AND store_id = ?", categoryID, storeID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("category")
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func pqStringArray(in []string) pq.StringArray {
	return pq.StringArray(in)
}

func validatePricing(price, discountPrice *float64) error {
	if discountPrice == nil {
		return nil
	}
	if price == nil {
		return apperrors.Validation("discount price requires a base price")
	}
	if *discountPrice >= *price {
		return apperrors.Validation("discount price must be lower than the base price")
	}
	return nil
}
