// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"
	"fmt"
	"time"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/domain/cart"
	"github.com/voltstore/backend/internal/domain/product"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
	}
}

// WishlistItemResponse represents a wishlist item with product details
type WishlistItemResponse struct {
	ID          uint             `json:"id"`
	ProductID   uint             `json:"product_id"`
	Product     *product.Product `json:"product,omitempty"`
	IsAvailable bool             `json:"is_available"`
	AddedAt     time.Time        `json:"added_at"`
}

// WishlistResponse represents a wishlist page
type WishlistResponse struct {
	Items      []WishlistItemResponse `json:"items"`
	Count      int                    `json:"count"`
	Pagination product.Pagination     `json:"pagination"`
}

// AddToWishlistRequest represents an add-to-wishlist request
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// MoveToCartRequest represents a move-to-cart request
type MoveToCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetWishlist retrieves the user's wishlist, newest first
func (s *Service) GetWishlist(userID uint, page, limit int) (*WishlistResponse, error) {
	var items []WishlistItem
	var total int64

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.config.Catalog.ProductsPerPage
	}

	query := s.db.Where("user_id = ?", userID)

	if err := query.Model(&WishlistItem{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist items: %w", err)
	}

	wishlistItems := make([]WishlistItemResponse, len(items))
	for i, item := range items {
		wishlistItems[i] = WishlistItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			AddedAt:   item.CreatedAt,
		}
	}

	if err := s.loadProductDetails(wishlistItems); err != nil {
		return nil, err
	}

	return &WishlistResponse{
		Items:      wishlistItems,
		Count:      len(wishlistItems),
		Pagination: product.NewPagination(page, limit, total),
	}, nil
}

// AddToWishlist adds a product to the wishlist. Already-present products are
// a conflict rather than a silent no-op.
func (s *Service) AddToWishlist(userID uint, req *AddToWishlistRequest) (*WishlistItemResponse, error) {
	var prod product.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	var existingItem WishlistItem
	if s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existingItem).Error == nil {
		return nil, fmt.Errorf("%w: item already in wishlist", apperr.ErrConflict)
	}

	wishlistItem := WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
	}

	if err := s.db.Create(&wishlistItem).Error; err != nil {
		return nil, fmt.Errorf("failed to add item to wishlist: %w", err)
	}

	responseItems := []WishlistItemResponse{{
		ID:        wishlistItem.ID,
		ProductID: wishlistItem.ProductID,
		AddedAt:   wishlistItem.CreatedAt,
	}}
	if err := s.loadProductDetails(responseItems); err != nil {
		return nil, err
	}

	return &responseItems[0], nil
}

// RemoveFromWishlist removes a product from the wishlist
func (s *Service) RemoveFromWishlist(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove item from wishlist: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item not in wishlist", apperr.ErrNotFound)
	}

	return nil
}

// ClearWishlist removes all items from the wishlist
func (s *Service) ClearWishlist(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&WishlistItem{}).Error
}

// IsInWishlist checks if a product is in the user's wishlist
func (s *Service) IsInWishlist(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// MoveToCart adds a wishlist product to the cart and removes it from the
// wishlist
func (s *Service) MoveToCart(userID uint, sessionID string, productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	inWishlist, err := s.IsInWishlist(userID, productID)
	if err != nil {
		return err
	}
	if !inWishlist {
		return fmt.Errorf("%w: item not in wishlist", apperr.ErrNotFound)
	}

	userIDPtr := &userID
	_, err = s.cartService.AddToCart(userIDPtr, sessionID, &cart.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	return s.RemoveFromWishlist(userID, productID)
}

// loadProductDetails attaches product data to wishlist lines
func (s *Service) loadProductDetails(items []WishlistItemResponse) error {
	for i := range items {
		var prod product.Product
		err := s.db.Preload("Category").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("is_primary DESC, sort_order ASC, id ASC")
			}).
			Where("id = ?", items[i].ProductID).
			First(&prod).Error
		if err != nil {
			items[i].IsAvailable = false
			continue
		}
		items[i].Product = &prod
		items[i].IsAvailable = prod.IsActive && prod.IsInStock()
	}

	return nil
}
