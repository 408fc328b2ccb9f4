// internal/catalog/resolver.go

// Package catalog holds the pricing and stock resolution rules shared by the
// public storefront and the order flow. Everything here is a pure function
// over already-loaded rows; the order service re-runs the same rules inside
// its transaction on locked data, and the browser mirrors them for instant
// feedback.
package catalog

import (
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

// Availability is the resolved stock for a (product, variant) pair. When
// Tracked is false the pair sells without a stock ceiling and Stock has no
// meaning.
type Availability struct {
	Tracked bool `json:"tracked"`
	Stock   int  `json:"stock"`
}

func Unlimited() Availability {
	return Availability{Tracked: false}
}

func Limited(stock int) Availability {
	return Availability{Tracked: true, Stock: stock}
}

// CanFulfill reports whether a requested quantity fits the availability.
func (a Availability) CanFulfill(quantity int) bool {
	return !a.Tracked || quantity <= a.Stock
}

// InStock reports whether at least one unit can be sold.
func (a Availability) InStock() bool {
	return a.CanFulfill(1)
}

// UnitPrice resolves the effective unit price for a product and an optional
// selected variant. A variant with its own price wins unless it defers to the
// parent; otherwise the product's discount price applies when set, then the
// base price. A nil result means "price on request".
func UnitPrice(product *models.Product, variant *models.ProductVariant) *float64 {
	if variant != nil && !variant.UseParentPrice && variant.Price != nil {
		return variant.Price
	}
	if product.DiscountPrice != nil {
		return product.DiscountPrice
	}
	return product.Price
}

// StockFor resolves the available stock for a product and an optional
// selected variant. The rules, in order:
//   - product does not track inventory: unlimited
//   - selected variant does not track inventory: unlimited
//   - selected variant shares the parent counter (UseParentStock): the
//     product's Inventory.stock, the variant's own stock field is ignored
//   - selected variant with its own counter: the variant's stock
//   - no variant selected: the product's Inventory.stock
//
// A product without an inventory row counts as stock 0.
func StockFor(product *models.Product, variant *models.ProductVariant) Availability {
	if !product.TrackInventory {
		return Unlimited()
	}

	if variant != nil {
		if !variant.TrackInventory {
			return Unlimited()
		}
		if !variant.UseParentStock {
			return Limited(variant.Stock)
		}
	}

	if product.Inventory == nil {
		return Limited(0)
	}
	return Limited(product.Inventory.Stock)
}

// DisplayName is the cart line label: the product name, paired with the
// variant name when one is selected.
func DisplayName(product *models.Product, variant *models.ProductVariant) string {
	if variant == nil {
		return product.Name
	}
	return product.Name + " (" + variant.Name + ")"
}

// VariantByID finds a variant on an already-loaded product. Callers fall back
// to base product pricing/stock when the id is absent or unknown.
func VariantByID(product *models.Product, variantID string) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID.String() == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}

// IsPurchasable reports whether a product belongs in the public catalog: it
// must be active, and either inventory tracking is off, the base counter has
// stock, or at least one variant resolves to available stock.
func IsPurchasable(product *models.Product) bool {
	if !product.IsActive {
		return false
	}
	if !product.TrackInventory {
		return true
	}

	if StockFor(product, nil).InStock() {
		return true
	}

	for i := range product.Variants {
		if StockFor(product, &product.Variants[i]).InStock() {
			return true
		}
	}

	return false
}

// VisibleProducts filters a raw product list down to the purchasable subset
// shown on the storefront.
func VisibleProducts(products []models.Product) []models.Product {
	visible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if IsPurchasable(&p) {
			visible = append(visible, p)
		}
	}
	return visible
}

// VisibleCategories keeps only categories that contain at least one visible
// product. Category order is preserved.
func VisibleCategories(categories []models.Category, visible []models.Product) []models.Category {
	populated := make(map[string]bool, len(categories))
	for _, p := range visible {
		if p.CategoryID != nil {
			populated[p.CategoryID.String()] = true
		}
	}

	kept := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if populated[c.ID.String()] {
			kept = append(kept, c)
		}
	}
	return kept
}
