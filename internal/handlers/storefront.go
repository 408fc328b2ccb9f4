// internal/handlers/storefront.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/services"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
)

// StorefrontHandler serves the public buyer-facing catalog. Everything here
// is unauthenticated and read-only.
type StorefrontHandler struct {
	storefrontService *services.StorefrontService
}

func NewStorefrontHandler(storefrontService *services.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontService: storefrontService,
	}
}

// GET /storefront/:slug
func (h *StorefrontHandler) GetStorefront(c *gin.Context) {
	view, err := h.storefrontService.GetStorefront(c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// GET /storefront/:slug/products
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	var categoryID *uuid.UUID
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		parsed, err := uuid.Parse(categoryStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category ID", nil)
			return
		}
		categoryID = &parsed
	}

	products, err := h.storefrontService.SearchStorefrontProducts(c.Param("slug"), categoryID, c.Query("search"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /products?store_id=&only_active=
//
// Flat listing for embedding clients that key on store id instead of slug.
func (h *StorefrontHandler) GetPublicProducts(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid store ID", nil)
		return
	}

	var categoryID *uuid.UUID
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		parsed, err := uuid.Parse(categoryStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category ID", nil)
			return
		}
		categoryID = &parsed
	}

	products, err := h.storefrontService.PublicProducts(
		storeID,
		c.DefaultQuery("only_active", "true") == "true",
		categoryID,
		c.Query("search"),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /storefront/:slug/products/:productId
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.storefrontService.GetStorefrontProduct(c.Param("slug"), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}
