// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/domain/pricing"
	"github.com/voltstore/backend/internal/domain/product"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles cart business logic. Authenticated carts live in the
// database, guest carts live in Redis keyed by session ID.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CartItemResponse represents a cart line with current product details
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     int64            `json:"price"`
	LineTotal int64            `json:"line_total"`
	Product   *product.Product `json:"product,omitempty"`
	AddedAt   time.Time        `json:"added_at"`
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	SessionID string             `json:"session_id,omitempty"`
	UserID    *uint              `json:"user_id,omitempty"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Totals    pricing.Totals     `json:"totals"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents an update-quantity request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// PricingConfig returns the pricing rules used for cart totals
func (s *Service) PricingConfig() pricing.Config {
	return pricing.Config{
		TaxRate:               s.config.Pricing.TaxRate,
		FlatShippingFee:       s.config.Pricing.FlatShippingFee,
		FreeShippingThreshold: s.config.Pricing.FreeShippingThreshold,
	}
}

// GetCart retrieves the cart for a user or guest session. Line prices are
// always the current catalog prices.
func (s *Service) GetCart(userID *uint, sessionID string) (*CartResponse, error) {
	var cartItems []CartItemResponse
	var updatedAt time.Time

	if userID != nil {
		var dbItems []CartItem
		err := s.db.Where("user_id = ?", *userID).Order("created_at ASC").Find(&dbItems).Error
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
		}

		cartItems = make([]CartItemResponse, len(dbItems))
		for i, item := range dbItems {
			cartItems[i] = CartItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				AddedAt:   item.CreatedAt,
			}
			if item.UpdatedAt.After(updatedAt) {
				updatedAt = item.UpdatedAt
			}
		}
	} else {
		sessionCart, err := s.getGuestCart(sessionID)
		if err != nil {
			return nil, err
		}

		cartItems = make([]CartItemResponse, len(sessionCart.Items))
		for i, item := range sessionCart.Items {
			cartItems[i] = CartItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				AddedAt:   item.AddedAt,
			}
		}
		updatedAt = sessionCart.UpdatedAt
	}

	if err := s.loadProductDetails(cartItems); err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(cartItems))
	for i := range cartItems {
		lines[i] = pricing.Line{UnitPrice: cartItems[i].Price, Quantity: cartItems[i].Quantity}
	}
	totals := pricing.Calculate(lines, s.PricingConfig())

	itemCount := 0
	for _, item := range cartItems {
		itemCount += item.Quantity
	}

	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	return &CartResponse{
		SessionID: sessionID,
		UserID:    userID,
		Items:     cartItems,
		ItemCount: itemCount,
		Totals:    totals,
		UpdatedAt: updatedAt,
	}, nil
}

// AddToCart adds a product to the cart, accumulating quantity when the
// product is already present. Quantities are not clamped to stock; the
// storefront surfaces stock limits at display time.
func (s *Service) AddToCart(userID *uint, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrValidation)
	}

	var prod product.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, req.ProductID, req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToGuestCart(sessionID, req.ProductID, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID, sessionID)
}

// UpdateCartItem replaces the quantity of a cart line. Zero removes the line.
func (s *Service) UpdateCartItem(userID *uint, sessionID string, productID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperr.ErrValidation)
	}

	if userID != nil {
		if err := s.updateUserCartItem(*userID, productID, req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.updateGuestCartItem(sessionID, productID, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID, sessionID)
}

// RemoveFromCart removes a cart line. Removing an absent line is a no-op.
func (s *Service) RemoveFromCart(userID *uint, sessionID string, productID uint) (*CartResponse, error) {
	if userID != nil {
		err := s.db.Where("user_id = ? AND product_id = ?", *userID, productID).Delete(&CartItem{}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		sessionCart, err := s.getGuestCart(sessionID)
		if err != nil {
			return nil, err
		}
		sessionCart.Remove(productID)
		if err := s.saveGuestCart(sessionID, sessionCart); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID, sessionID)
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(userID *uint, sessionID string) error {
	if userID != nil {
		return s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error
	}
	ctx := context.Background()
	return s.redisClient.Del(ctx, s.cartKey(sessionID)).Err()
}

// GetCartItemCount returns the total quantity across cart lines
func (s *Service) GetCartItemCount(userID *uint, sessionID string) (int, error) {
	cartResponse, err := s.GetCart(userID, sessionID)
	if err != nil {
		return 0, err
	}
	return cartResponse.ItemCount, nil
}

// MergeGuestCartToUser folds the guest cart into the user's cart on login
func (s *Service) MergeGuestCartToUser(userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	guestCart, err := s.getGuestCart(sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil
	}

	for _, guestItem := range guestCart.Items {
		if err := s.addToUserCart(userID, guestItem.ProductID, guestItem.Quantity); err != nil {
			return fmt.Errorf("failed to merge cart item: %w", err)
		}
	}

	return s.ClearCart(nil, sessionID)
}

// Private helper methods

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) addToUserCart(userID, productID uint, quantity int) error {
	var existingItem CartItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existingItem)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		newItem := CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		return s.db.Create(&newItem).Error
	} else if result.Error != nil {
		return fmt.Errorf("failed to look up cart item: %w", result.Error)
	}

	existingItem.Quantity += quantity
	return s.db.Save(&existingItem).Error
}

func (s *Service) addToGuestCart(sessionID string, productID uint, quantity int) error {
	sessionCart, err := s.getGuestCart(sessionID)
	if err != nil {
		return err
	}

	sessionCart.Add(productID, quantity)
	return s.saveGuestCart(sessionID, sessionCart)
}

func (s *Service) updateUserCartItem(userID, productID uint, quantity int) error {
	if quantity == 0 {
		result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartItem{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove cart item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: item not in cart", apperr.ErrNotFound)
		}
		return nil
	}

	result := s.db.Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item not in cart", apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) updateGuestCartItem(sessionID string, productID uint, quantity int) error {
	sessionCart, err := s.getGuestCart(sessionID)
	if err != nil {
		return err
	}

	if !sessionCart.SetQuantity(productID, quantity) {
		return fmt.Errorf("%w: item not in cart", apperr.ErrNotFound)
	}

	return s.saveGuestCart(sessionID, sessionCart)
}

func (s *Service) getGuestCart(sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session ID required for guest cart", apperr.ErrValidation)
	}

	ctx := context.Background()

	cartData, err := s.redisClient.Get(ctx, s.cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: failed to load guest cart: %v", apperr.ErrUnavailable, err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}

	return &sessionCart, nil
}

func (s *Service) saveGuestCart(sessionID string, cart *SessionCart) error {
	ctx := context.Background()

	cartData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}

	return s.redisClient.Set(ctx, s.cartKey(sessionID), cartData, s.config.Catalog.GuestCartTTL).Err()
}

// loadProductDetails attaches current product data and prices to cart lines.
// Lines whose products have vanished or gone inactive keep zero prices so
// order creation can reject them explicitly.
func (s *Service) loadProductDetails(cartItems []CartItemResponse) error {
	for i := range cartItems {
		var prod product.Product
		err := s.db.Preload("Category").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("is_primary DESC, sort_order ASC, id ASC")
			}).
			Where("id = ? AND is_active = ?", cartItems[i].ProductID, true).
			First(&prod).Error
		if err != nil {
			continue
		}
		cartItems[i].Product = &prod
		cartItems[i].Price = prod.Price
		cartItems[i].LineTotal = prod.Price * int64(cartItems[i].Quantity)
	}

	return nil
}
