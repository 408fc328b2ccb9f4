// internal/services/storefront_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/catalog"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

// StorefrontService serves the public, unauthenticated catalog. Visibility
// is recomputed from live rows on every call; there is no cache to go stale.
type StorefrontService struct {
	db *gorm.DB
}

func NewStorefrontService(db *gorm.DB) *StorefrontService {
	return &StorefrontService{db: db}
}

type StorefrontView struct {
	Store      *models.Store     `json:"store"`
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

func (s *StorefrontService) GetStorefront(storeSlug string) (*StorefrontView, error) {
	store, err := s.storeBySlug(storeSlug)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := s.db.Where("store_id = ? AND is_active = ?", store.ID, true).
		Preload("Inventory").Preload("Variants").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var categories []models.Category
	if err := s.db.Where("store_id = ?", store.ID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	visible := catalog.VisibleProducts(products)

	return &StorefrontView{
		Store:      store,
		Categories: catalog.VisibleCategories(categories, visible),
		Products:   visible,
	}, nil
}

// SearchStorefrontProducts filters the public catalog. Hidden products never
// leak out regardless of the filters, so the visibility pass runs last.
func (s *StorefrontService) SearchStorefrontProducts(storeSlug string, categoryID *uuid.UUID, search string) ([]models.Product, error) {
	store, err := s.storeBySlug(storeSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("store_id = ? AND is_active = ?", store.ID, true).
		Preload("Inventory").Preload("Variants").Preload("Category")

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return catalog.VisibleProducts(products), nil
}

// PublicProducts lists a store's products by id for embedding clients. With
// onlyActive the result is the visible subset a storefront would render;
// without it every row comes back, which previews use to show drafts.
func (s *StorefrontService) PublicProducts(storeID uuid.UUID, onlyActive bool, categoryID *uuid.UUID, search string) ([]models.Product, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	query := s.db.Where("store_id = ?", storeID).
		Preload("Inventory").Preload("Variants").Preload("Category")

	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if onlyActive {
		return catalog.VisibleProducts(products), nil
	}
	return products, nil
}

// GetStorefrontProduct returns one purchasable product with inventory and
// variants nested so the client can mirror the pricing/stock resolution.
func (s *StorefrontService) GetStorefrontProduct(storeSlug string, productID uuid.UUID) (*models.Product, error) {
	store, err := s.storeBySlug(storeSlug)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND store_id = ?", productID, store.ID).
		Preload("Inventory").Preload("Variants").Preload("Category").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !catalog.IsPurchasable(&product) {
		return nil, apperrors.NotFound("product")
	}

	return &product, nil
}

func (s *StorefrontService) storeBySlug(storeSlug string) (*models.Store, error) {
	var store models.Store
	if err := s.db.Where("slug = ?", storeSlug).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}
