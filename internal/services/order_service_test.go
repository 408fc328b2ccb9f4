// internal/services/order_service_test.go
package services

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/database"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
)

// OrderServiceTestSuite runs against a real Postgres database because the
// order flow lives on row locks and guarded decrements that sqlite cannot
// reproduce. Set TEST_DATABASE_URL to run it.
type OrderServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	orders *OrderService

	owner *models.User
	store *models.Store
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_URL not set; skipping order service integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))

	s.db = db
	s.orders = NewOrderService(db)
}

func (s *OrderServiceTestSuite) SetupTest() {
	owner := &models.User{
		Name:   "Merchant",
		Email:  fmt.Sprintf("merchant-%s@example.com", uuid.New().String()[:8]),
		Status: models.UserStatusActive,
	}
	s.Require().NoError(owner.SetPassword("Merchant123"))
	s.Require().NoError(s.db.Create(owner).Error)

	store := &models.Store{
		OwnerID:        owner.ID,
		Name:           "Cafe Rio",
		Slug:           "cafe-rio-" + uuid.New().String()[:8],
		WhatsAppNumber: "+57 300 123 4567",
	}
	s.Require().NoError(s.db.Create(store).Error)

	s.owner = owner
	s.store = store
}

func (s *OrderServiceTestSuite) createProduct(name string, price, discount *float64, stock int) *models.Product {
	product := &models.Product{
		StoreID:        s.store.ID,
		Name:           name,
		Price:          price,
		DiscountPrice:  discount,
		IsActive:       true,
		TrackInventory: true,
	}
	s.Require().NoError(s.db.Create(product).Error)
	s.Require().NoError(s.db.Create(&models.Inventory{ProductID: product.ID, Stock: stock}).Error)
	return product
}

func (s *OrderServiceTestSuite) createVariant(product *models.Product, name string, stock int, useParentStock bool) *models.ProductVariant {
	variant := &models.ProductVariant{
		ProductID:      product.ID,
		Name:           name,
		UseParentPrice: true,
		Stock:          stock,
		UseParentStock: useParentStock,
		TrackInventory: true,
	}
	s.Require().NoError(s.db.Create(variant).Error)
	return variant
}

func (s *OrderServiceTestSuite) baseStock(productID uuid.UUID) int {
	var inv models.Inventory
	s.Require().NoError(s.db.First(&inv, "product_id = ?", productID).Error)
	return inv.Stock
}

func (s *OrderServiceTestSuite) variantStock(variantID uuid.UUID) int {
	var v models.ProductVariant
	s.Require().NoError(s.db.First(&v, "id = ?", variantID).Error)
	return v.Stock
}

func price(v float64) *float64 {
	return &v
}

func (s *OrderServiceTestSuite) TestCreateOrderDecrementsStock() {
	product := s.createProduct("Coffee Beans", price(100), price(80), 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	s.Require().NoError(err)

	s.Equal(240.0, result.Order.Total)
	s.Equal(models.OrderStatusPending, result.Order.Status)
	s.Require().Len(result.Order.Items, 1)
	s.Equal("Coffee Beans", result.Order.Items[0].ProductName)
	s.Equal(80.0, result.Order.Items[0].UnitPrice)

	s.Equal(2, s.baseStock(product.ID))
	s.True(strings.HasPrefix(result.WhatsAppLink, "https://wa.me/573001234567?text="))
}

func (s *OrderServiceTestSuite) TestCreateOrderInsufficientStock() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 6},
		},
	})

	stockErr, ok := apperrors.AsInsufficientStock(err)
	s.Require().True(ok)
	s.Equal("Coffee Beans", stockErr.ProductName)
	s.Equal(5, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderFailingLineRollsBackEverything() {
	plenty := s.createProduct("Coffee Beans", price(100), nil, 5)
	scarce := s.createProduct("Mug", price(50), nil, 1)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 2},
		},
	})

	_, ok := apperrors.AsInsufficientStock(err)
	s.Require().True(ok)

	// The first line's decrement must not survive the rollback.
	s.Equal(5, s.baseStock(plenty.ID))
	s.Equal(1, s.baseStock(scarce.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderRepeatedLinesShareTheCounter() {
	product := s.createProduct("Coffee Beans", price(100), nil, 3)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: product.ID, Quantity: 2},
		},
	})

	_, ok := apperrors.AsInsufficientStock(err)
	s.Require().True(ok)
	s.Equal(3, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderVariantOwnCounter() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)
	variant := s.createVariant(product, "Large", 2, false)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, VariantID: &variant.ID, Quantity: 2},
		},
	})
	s.Require().NoError(err)

	s.Equal(0, s.variantStock(variant.ID))
	s.Equal(5, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderVariantSharedCounter() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)
	variant := s.createVariant(product, "Large", 99, true)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, VariantID: &variant.ID, Quantity: 4},
		},
	})
	s.Require().NoError(err)

	// Shared counter moves; the variant's own field is untouched.
	s.Equal(1, s.baseStock(product.ID))
	s.Equal(99, s.variantStock(variant.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderPriceOnRequestRejected() {
	product := s.createProduct("Custom Cake", nil, nil, 5)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})

	s.True(apperrors.IsValidation(err))
	s.Equal(5, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestCreateOrderInactiveProductRejected() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)
	s.Require().NoError(s.db.Model(product).Update("is_active", false).Error)

	_, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})

	s.True(apperrors.IsValidation(err))
}

func (s *OrderServiceTestSuite) TestCreateOrderAddressDroppedWithoutDelivery() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:         s.store.ID,
		CustomerName:    "Ana",
		CustomerAddress: "Calle 10 #4-20",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)

	s.Nil(result.Order.CustomerAddress)
}

func (s *OrderServiceTestSuite) TestCreateOrderConcurrentLastUnit() {
	product := s.createProduct("Coffee Beans", price(100), nil, 1)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orders.CreateOrder(&CreateOrderRequest{
				StoreID:      s.store.ID,
				CustomerName: "Ana",
				Items: []OrderLineRequest{
					{ProductID: product.ID, Quantity: 1},
				},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, refused int
	for err := range errs {
		if err == nil {
			succeeded++
		} else if _, ok := apperrors.AsInsufficientStock(err); ok {
			refused++
		} else {
			s.FailNow("unexpected error", err.Error())
		}
	}

	s.Equal(1, succeeded)
	s.Equal(1, refused)
	s.Equal(0, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestOrderItemsSnapshotSurvivesEdits() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(product).Updates(map[string]interface{}{
		"name":  "Premium Coffee Beans",
		"price": 200,
	}).Error)

	reloaded, err := s.orders.GetOrder(result.Order.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(reloaded.Items, 1)
	s.Equal("Coffee Beans", reloaded.Items[0].ProductName)
	s.Equal(100.0, reloaded.Items[0].UnitPrice)
}

func (s *OrderServiceTestSuite) TestUpdateStatusTransitions() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)
	orderID := result.Order.ID

	order, err := s.orders.UpdateStatus(orderID, s.owner.ID, models.OrderStatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCompleted, order.Status)

	// Repeating the same status is a no-op, not an error.
	order, err = s.orders.UpdateStatus(orderID, s.owner.ID, models.OrderStatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCompleted, order.Status)

	// A completed order is terminal.
	_, err = s.orders.UpdateStatus(orderID, s.owner.ID, models.OrderStatusCancelled)
	s.True(apperrors.IsConflict(err))

	_, err = s.orders.UpdateStatus(orderID, s.owner.ID, models.OrderStatus("SHIPPED"))
	s.True(apperrors.IsValidation(err))
}

func (s *OrderServiceTestSuite) TestCancelDoesNotRestock() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	s.Require().NoError(err)
	s.Equal(3, s.baseStock(product.ID))

	_, err = s.orders.UpdateStatus(result.Order.ID, s.owner.ID, models.OrderStatusCancelled)
	s.Require().NoError(err)

	// Merchants restock through the inventory endpoint if they want the
	// units back.
	s.Equal(3, s.baseStock(product.ID))
}

func (s *OrderServiceTestSuite) TestUpdateStatusForeignOwnerNotFound() {
	product := s.createProduct("Coffee Beans", price(100), nil, 5)

	result, err := s.orders.CreateOrder(&CreateOrderRequest{
		StoreID:      s.store.ID,
		CustomerName: "Ana",
		Items: []OrderLineRequest{
			{ProductID: product.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)

	_, err = s.orders.UpdateStatus(result.Order.ID, uuid.New(), models.OrderStatusCompleted)
	s.True(apperrors.IsNotFound(err))
}
