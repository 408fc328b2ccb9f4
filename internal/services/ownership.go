// internal/services/ownership.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

// storeForOwner loads a store and enforces that it belongs to the given
// user. Every dashboard mutation goes through this check.
func storeForOwner(db *gorm.DB, storeID, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := db.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("store")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}
