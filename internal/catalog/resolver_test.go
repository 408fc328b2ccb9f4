// internal/catalog/resolver_test.go
package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

func f(v float64) *float64 {
	return &v
}

func baseProduct() models.Product {
	p := models.Product{
		Name:           "Coffee Beans",
		Price:          f(100),
		IsActive:       true,
		TrackInventory: true,
		Inventory:      &models.Inventory{Stock: 10},
	}
	p.ID = uuid.New()
	return p
}

func TestUnitPriceBasePrice(t *testing.T) {
	p := baseProduct()
	price := UnitPrice(&p, nil)
	assert.NotNil(t, price)
	assert.Equal(t, 100.0, *price)
}

func TestUnitPriceDiscountWins(t *testing.T) {
	p := baseProduct()
	p.DiscountPrice = f(80)

	price := UnitPrice(&p, nil)
	assert.NotNil(t, price)
	assert.Equal(t, 80.0, *price)
}

func TestUnitPriceVariantOwnPrice(t *testing.T) {
	p := baseProduct()
	p.DiscountPrice = f(80)
	v := models.ProductVariant{Name: "Large", Price: f(120), UseParentPrice: false}

	price := UnitPrice(&p, &v)
	assert.NotNil(t, price)
	assert.Equal(t, 120.0, *price)
}

func TestUnitPriceVariantDefersToParent(t *testing.T) {
	p := baseProduct()
	p.DiscountPrice = f(80)

	// An own price is ignored while the variant defers to the parent.
	v := models.ProductVariant{Name: "Large", Price: f(120), UseParentPrice: true}

	price := UnitPrice(&p, &v)
	assert.NotNil(t, price)
	assert.Equal(t, 80.0, *price)
}

func TestUnitPriceVariantWithoutOwnPriceFallsBack(t *testing.T) {
	p := baseProduct()
	v := models.ProductVariant{Name: "Large", UseParentPrice: false}

	price := UnitPrice(&p, &v)
	assert.NotNil(t, price)
	assert.Equal(t, 100.0, *price)
}

func TestUnitPricePriceOnRequest(t *testing.T) {
	p := baseProduct()
	p.Price = nil

	assert.Nil(t, UnitPrice(&p, nil))
}

func TestStockForUntrackedProduct(t *testing.T) {
	p := baseProduct()
	p.TrackInventory = false
	p.Inventory = nil

	a := StockFor(&p, nil)
	assert.False(t, a.Tracked)
	assert.True(t, a.CanFulfill(1_000_000))
}

func TestStockForBaseCounter(t *testing.T) {
	p := baseProduct()

	a := StockFor(&p, nil)
	assert.True(t, a.Tracked)
	assert.Equal(t, 10, a.Stock)
	assert.True(t, a.CanFulfill(10))
	assert.False(t, a.CanFulfill(11))
}

func TestStockForMissingInventoryRowIsZero(t *testing.T) {
	p := baseProduct()
	p.Inventory = nil

	a := StockFor(&p, nil)
	assert.True(t, a.Tracked)
	assert.Equal(t, 0, a.Stock)
	assert.False(t, a.InStock())
}

func TestStockForVariantOwnCounter(t *testing.T) {
	p := baseProduct()
	v := models.ProductVariant{Name: "Large", Stock: 3, TrackInventory: true}

	a := StockFor(&p, &v)
	assert.True(t, a.Tracked)
	assert.Equal(t, 3, a.Stock)
}

func TestStockForVariantSharesParentCounter(t *testing.T) {
	p := baseProduct()

	// The variant's own stock field is stale data once it shares the parent
	// counter.
	v := models.ProductVariant{Name: "Large", Stock: 99, UseParentStock: true, TrackInventory: true}

	a := StockFor(&p, &v)
	assert.True(t, a.Tracked)
	assert.Equal(t, 10, a.Stock)
}

func TestStockForUntrackedVariant(t *testing.T) {
	p := baseProduct()
	p.Inventory = &models.Inventory{Stock: 0}
	v := models.ProductVariant{Name: "Made to order", TrackInventory: false}

	a := StockFor(&p, &v)
	assert.False(t, a.Tracked)
	assert.True(t, a.InStock())
}

func TestIsPurchasableInactive(t *testing.T) {
	p := baseProduct()
	p.IsActive = false

	assert.False(t, IsPurchasable(&p))
}

func TestIsPurchasableUntracked(t *testing.T) {
	p := baseProduct()
	p.TrackInventory = false
	p.Inventory = nil

	assert.True(t, IsPurchasable(&p))
}

func TestIsPurchasableOutOfStock(t *testing.T) {
	p := baseProduct()
	p.Inventory = &models.Inventory{Stock: 0}

	assert.False(t, IsPurchasable(&p))
}

func TestIsPurchasableViaVariantStock(t *testing.T) {
	p := baseProduct()
	p.Inventory = &models.Inventory{Stock: 0}
	p.Variants = []models.ProductVariant{
		{Name: "Large", Stock: 0, TrackInventory: true},
		{Name: "Small", Stock: 2, TrackInventory: true},
	}

	assert.True(t, IsPurchasable(&p))
}

func TestIsPurchasableViaUntrackedVariant(t *testing.T) {
	p := baseProduct()
	p.Inventory = &models.Inventory{Stock: 0}
	p.Variants = []models.ProductVariant{
		{Name: "Made to order", TrackInventory: false},
	}

	assert.True(t, IsPurchasable(&p))
}

func TestIsPurchasableVariantsShareEmptyParent(t *testing.T) {
	p := baseProduct()
	p.Inventory = &models.Inventory{Stock: 0}
	p.Variants = []models.ProductVariant{
		{Name: "Large", Stock: 99, UseParentStock: true, TrackInventory: true},
	}

	assert.False(t, IsPurchasable(&p))
}

func TestVisibleProducts(t *testing.T) {
	inStock := baseProduct()
	soldOut := baseProduct()
	soldOut.Inventory = &models.Inventory{Stock: 0}
	hidden := baseProduct()
	hidden.IsActive = false

	visible := VisibleProducts([]models.Product{inStock, soldOut, hidden})

	assert.Len(t, visible, 1)
	assert.Equal(t, inStock.ID, visible[0].ID)
}

func TestVisibleCategoriesDropsEmptyOnes(t *testing.T) {
	drinks := models.Category{Name: "Drinks"}
	drinks.ID = uuid.New()
	snacks := models.Category{Name: "Snacks"}
	snacks.ID = uuid.New()

	p := baseProduct()
	drinksID := drinks.ID
	p.CategoryID = &drinksID

	kept := VisibleCategories([]models.Category{drinks, snacks}, []models.Product{p})

	assert.Len(t, kept, 1)
	assert.Equal(t, "Drinks", kept[0].Name)
}

func TestDisplayName(t *testing.T) {
	p := baseProduct()
	v := models.ProductVariant{Name: "Large"}

	assert.Equal(t, "Coffee Beans", DisplayName(&p, nil))
	assert.Equal(t, "Coffee Beans (Large)", DisplayName(&p, &v))
}

func TestVariantByID(t *testing.T) {
	p := baseProduct()
	v := models.ProductVariant{Name: "Large"}
	v.ID = uuid.New()
	p.Variants = []models.ProductVariant{v}

	assert.Nil(t, VariantByID(&p, uuid.New().String()))

	found := VariantByID(&p, v.ID.String())
	assert.NotNil(t, found)
	assert.Equal(t, "Large", found.Name)
}
