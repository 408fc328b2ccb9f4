// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/catalog"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/models"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/whatsapp"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderLineRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	StoreID         uuid.UUID          `json:"store_id" validate:"required"`
	CustomerName    string             `json:"customer_name" validate:"required,max=100"`
	CustomerPhone   string             `json:"customer_phone,omitempty" validate:"omitempty,phone"`
	CustomerAddress string             `json:"customer_address,omitempty" validate:"omitempty,max=500"`
	Items           []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderResult struct {
	Order        *models.Order `json:"order"`
	WhatsAppLink string        `json:"whatsapp_link"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status *models.OrderStatus
}

// CreateOrder validates the cart against live stock, snapshots the line
// items, persists the order and decrements the matching counters, all inside
// one transaction. Any failing line rolls back the whole order. Prices and
// stock always come from freshly locked rows, never from the client.
func (s *OrderService) CreateOrder(req *CreateOrderRequest) (*CreateOrderResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed: %v", err)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, apperrors.Validation("customer name is required")
	}

	var order *models.Order
	var store models.Store

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&store, "id = ?", req.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("store")
			}
			return fmt.Errorf("database error: %w", err)
		}

		// The address only means something when the store delivers.
		address := strings.TrimSpace(req.CustomerAddress)
		if !store.DeliveryEnabled {
			address = ""
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		var total float64

		for _, line := range req.Items {
			item, linePrice, err := s.reserveLine(tx, store.ID, line)
			if err != nil {
				return err
			}
			items = append(items, *item)
			total += linePrice
		}

		order = &models.Order{
			StoreID:      store.ID,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Total:        total,
			Status:       models.OrderStatusPending,
			Items:        items,
		}
		if phone := strings.TrimSpace(req.CustomerPhone); phone != "" {
			order.CustomerPhone = &phone
		}
		if address != "" {
			order.CustomerAddress = &address
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		Order:        order,
		WhatsAppLink: whatsapp.OrderLink(&store, order),
	}, nil
}

// reserveLine locks the authoritative rows for one cart line, resolves price
// and stock with the catalog rules, decrements the owning counter and
// returns the snapshotted order item plus the line total.
func (s *OrderService) reserveLine(tx *gorm.DB, storeID uuid.UUID, line OrderLineRequest) (*models.OrderItem, float64, error) {
	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND store_id = ?", line.ProductID, storeID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("product")
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	if !product.IsActive {
		return nil, 0, apperrors.Validation("product %s is not available", product.Name)
	}

	var variant *models.ProductVariant
	if line.VariantID != nil {
		var v models.ProductVariant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND product_id = ?", *line.VariantID, product.ID).
			First(&v).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, apperrors.NotFound("variant")
			}
			return nil, 0, fmt.Errorf("database error: %w", err)
		}
		variant = &v
	}

	// Load the shared counter under lock when this line resolves to it.
	usesBaseCounter := product.TrackInventory &&
		(variant == nil || (variant.TrackInventory && variant.UseParentStock))
	if usesBaseCounter {
		var inv models.Inventory
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", product.ID).
			First(&inv).Error
		if err == nil {
			product.Inventory = &inv
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("database error: %w", err)
		}
		// No inventory row counts as zero stock.
	}

	price := catalog.UnitPrice(&product, variant)
	if price == nil {
		return nil, 0, apperrors.Validation("product %s is price on request and cannot be ordered", product.Name)
	}

	availability := catalog.StockFor(&product, variant)
	if !availability.CanFulfill(line.Quantity) {
		return nil, 0, apperrors.InsufficientStock(product.Name)
	}

	// Guarded decrement on whichever counter the resolver read. The stock
	// condition keeps concurrent submissions and repeated lines for the same
	// product honest even after the check above.
	if availability.Tracked {
		var res *gorm.DB
		if variant != nil && !variant.UseParentStock {
			res = tx.Model(&models.ProductVariant{}).
				Where("id = ? AND stock >= ?", variant.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		} else {
			res = tx.Model(&models.Inventory{}).
				Where("product_id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		}
		if res.Error != nil {
			return nil, 0, fmt.Errorf("failed to decrement stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, 0, apperrors.InsufficientStock(product.Name)
		}
	}

	item := &models.OrderItem{
		ProductID:   product.ID,
		VariantID:   line.VariantID,
		ProductName: product.Name,
		Quantity:    line.Quantity,
		UnitPrice:   *price,
		SKU:         product.SKU,
	}
	if variant != nil {
		name := variant.Name
		item.VariantName = &name
		if variant.SKU != nil {
			item.SKU = variant.SKU
		}
	}

	return item, *price * float64(line.Quantity), nil
}

// UpdateStatus moves an order between statuses without touching inventory.
// Cancelling does not restock; merchants adjust counters through the
// inventory endpoints.
func (s *OrderService) UpdateStatus(orderID, ownerID uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, apperrors.Validation("invalid order status %q", string(target))
	}

	var order models.Order
	if err := s.db.Joins("JOIN stores ON stores.id = orders.store_id").
		Where("orders.id = ? AND stores.owner_id = ?", orderID, ownerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.Status == target {
		return &order, nil
	}

	if !order.Status.ValidTransition(target) {
		return nil, apperrors.Conflict("order status %s is terminal", string(order.Status))
	}

	if err := s.db.Model(&order).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.db.Preload("Items").First(&order, order.ID)
	return &order, nil
}

func (s *OrderService) GetOrder(orderID, ownerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Joins("JOIN stores ON stores.id = orders.store_id").
		Where("orders.id = ? AND stores.owner_id = ?", orderID, ownerID).
		Preload("Items").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetStoreOrders(storeID, ownerID uuid.UUID, params OrderSearchParams) ([]models.Order, int64, error) {
	if _, err := storeForOwner(s.db, storeID, ownerID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Order{}).Where("store_id = ?", storeID).Preload("Items")

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
