// internal/services/category_service.go
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

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (s *CategoryService) CreateCategory(storeID, ownerID uuid.UUID, req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if _, err := storeForOwner(s.db, storeID, ownerID); err != nil {
		return nil, err
	}

	categorySlug := slug.Make(req.Name)

	var existing models.Category
	err := s.db.Where("store_id = ? AND slug = ?", storeID, categorySlug).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("category %q already exists in this store", req.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	category := &models.Category{
		StoreID: storeID,
		Name:    req.Name,
		Slug:    categorySlug,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) GetStoreCategories(storeID, ownerID uuid.UUID) ([]models.Category, error) {
	if _, err := storeForOwner(s.db, storeID, ownerID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("store_id = ?", storeID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(categoryID, ownerID uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	category, err := s.categoryForOwner(categoryID, ownerID)
	if err != nil {
		return nil, err
	}

	newSlug := slug.Make(req.Name)
	if newSlug != category.Slug {
		var existing models.Category
		err := s.db.Where("store_id = ? AND slug = ? AND id <> ?", category.StoreID, newSlug, category.ID).
			First(&existing).Error
		if err == nil {
			return nil, apperrors.Conflict("category %q already exists in this store", req.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	if err := s.db.Model(category).Updates(map[string]interface{}{
		"name": req.Name,
		"slug": newSlug,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory detaches products (category_id goes NULL) rather than
// deleting them.
func (s *CategoryService) DeleteCategory(categoryID, ownerID uuid.UUID) error {
	category, err := s.categoryForOwner(categoryID, ownerID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach products: %w", err)
		}

		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		return nil
	})
}

func (s *CategoryService) categoryForOwner(categoryID, ownerID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Joins("JOIN stores ON stores.id = categories.store_id").
		Where("categories.id = ? AND stores.owner_id = ?", categoryID, ownerID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}
