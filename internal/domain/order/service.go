// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/domain/cart"
	"github.com/voltstore/backend/internal/domain/pricing"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int         `form:"page,default=1"`
	Limit  int         `form:"limit,default=20"`
	Status OrderStatus `form:"status"`
	UserID uint        `form:"-"`
}

// OrderListResponse represents an order page with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder builds an order from the user's cart inside one transaction:
// the cart must not be empty, the address must be complete, each line is
// snapshotted at its current price, and the cart is cleared. Either the
// order exists and the cart is empty, or neither happened.
func (s *Service) CreateOrder(userID uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	if missing := req.ShippingAddress.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing address fields: %s", apperr.ErrValidation, strings.Join(missing, ", "))
	}

	userIDPtr := &userID
	cartResponse, err := s.cartService.GetCart(userIDPtr, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	if len(cartResponse.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", apperr.ErrValidation)
	}

	// Every line must still resolve to an active product
	lines := make([]pricing.Line, 0, len(cartResponse.Items))
	for _, item := range cartResponse.Items {
		if item.Product == nil {
			return nil, fmt.Errorf("%w: product %d is no longer available", apperr.ErrValidation, item.ProductID)
		}
		lines = append(lines, pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity})
	}

	totals := pricing.Calculate(lines, s.cartService.PricingConfig())

	order := Order{
		UserID:          userID,
		Status:          OrderStatusPending,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Currency:        s.config.Pricing.Currency,
		ShippingAddress: req.ShippingAddress,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		order.OrderNumber = order.GenerateOrderNumber()
		if err := tx.Model(&order).Update("order_number", order.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to update order number: %w", err)
		}

		for _, cartItem := range cartResponse.Items {
			orderItem := OrderItem{
				OrderID:    order.ID,
				ProductID:  cartItem.ProductID,
				SKU:        cartItem.Product.SKU,
				Name:       cartItem.Product.Name,
				Image:      cartItem.Product.PrimaryImage(),
				Quantity:   cartItem.Quantity,
				Price:      cartItem.Price,
				TotalPrice: cartItem.Price * int64(cartItem.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		statusHistory := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    OrderStatusPending,
			Comment:   "Order created",
			CreatedBy: userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&statusHistory).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		// Clearing the user cart participates in the transaction
		if err := tx.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// A guest cart merged at login may still linger in Redis
	if sessionID != "" {
		if err := s.cartService.ClearCart(nil, sessionID); err != nil {
			fmt.Printf("Warning: failed to clear guest cart after order creation: %v\n", err)
		}
	}

	if err := s.db.Preload("Items").Preload("StatusHistory").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load complete order: %w", err)
	}

	return &order, nil
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{}).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})

	if req.Status != "" {
		if !IsKnownStatus(req.Status) {
			return nil, fmt.Errorf("%w: unknown order status %q", apperr.ErrValidation, req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &OrderListResponse{
		Orders:     orders,
		Pagination: pagination,
	}, nil
}

// GetOrder retrieves a single order by ID. When ownerID is non-nil the order
// must belong to that user; a mismatch reads the same as a missing order.
func (s *Service) GetOrder(id uint, ownerID *uint) (*Order, error) {
	var order Order
	query := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id)

	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	if result := query.First(&order); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// GetOrderByNumber retrieves a single order by order number
func (s *Service) GetOrderByNumber(orderNumber string) (*Order, error) {
	var order Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_number = ?", orderNumber).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderNumber)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// UpdateOrderStatus sets the order status. Any known status may follow any
// other; only membership in the status set is validated.
func (s *Service) UpdateOrderStatus(orderID uint, status OrderStatus, comment string, updatedBy uint) (*Order, error) {
	if !IsKnownStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperr.ErrValidation, status)
	}

	var order Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		statusHistory := OrderStatusHistory{
			OrderID:   orderID,
			Status:    status,
			Comment:   comment,
			CreatedBy: updatedBy,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&statusHistory).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID, nil)
}

// GetUserOrders retrieves orders for a specific user, newest first
func (s *Service) GetUserOrders(userID uint, page, limit int) (*OrderListResponse, error) {
	req := &OrderListRequest{
		Page:   page,
		Limit:  limit,
		UserID: userID,
	}
	return s.GetOrders(req)
}
