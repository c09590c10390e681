// internal/domain/product/review_service.go
package product

import (
	"errors"
	"fmt"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// ReviewService handles product review business logic
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// ReviewCreateRequest represents review creation data
type ReviewCreateRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=5"`
}

// ReviewResponse represents a review with reviewer details
type ReviewResponse struct {
	Review
	ReviewerFirstName string `json:"reviewer_first_name"`
	ReviewerLastName  string `json:"reviewer_last_name"`
	ReviewerAvatarURL string `json:"reviewer_avatar_url,omitempty"`
}

// ReviewListResponse represents a review page with pagination
type ReviewListResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
}

// GetProductReviews retrieves reviews for a product, newest first
func (s *ReviewService) GetProductReviews(productID uint, page, limit int) (*ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.config.Catalog.ProductsPerPage
	}

	// The product must exist even when it has no reviews yet
	var product Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	var total int64
	if err := s.db.Model(&Review{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []ReviewResponse
	err := s.db.Model(&Review{}).
		Select("reviews.*, users.first_name AS reviewer_first_name, users.last_name AS reviewer_last_name, users.avatar_url AS reviewer_avatar_url").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	return &ReviewListResponse{
		Reviews:    reviews,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// CreateReview creates a review and refreshes the product's rating aggregates.
// One review per user per product.
func (s *ReviewService) CreateReview(userID, productID uint, req *ReviewCreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	}

	var product Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	var existing Review
	if result := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: product already reviewed", apperr.ErrConflict)
	}

	review := Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return s.refreshProductAggregates(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// refreshProductAggregates recomputes a product's rating and review count
func (s *ReviewService) refreshProductAggregates(tx *gorm.DB, productID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	err = tx.Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       agg.Avg,
			"review_count": agg.Count,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}
