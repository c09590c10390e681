// internal/domain/product/service.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Sort keys accepted by the product list endpoint
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// sortClauses maps public sort keys to ORDER BY clauses. Anything outside
// this map falls back to newest-first.
var sortClauses = map[string]string{
	SortPriceAsc:  "price ASC",
	SortPriceDesc: "price DESC",
	SortNameAsc:   "name ASC",
	SortNameDesc:  "name DESC",
	SortNewest:    "created_at DESC",
	SortRating:    "rating DESC",
}

// BuildOrderClause resolves a public sort key to an ORDER BY clause
func BuildOrderClause(sort string) string {
	if clause, ok := sortClauses[sort]; ok {
		return clause
	}
	return sortClauses[SortNewest]
}

// ProductListRequest represents product list query parameters.
// Prices are in cents.
type ProductListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit"`
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Search   string `form:"search"`
	Sort     string `form:"sort,default=newest"`
	MinPrice int64  `form:"min_price"`
	MaxPrice int64  `form:"max_price"`
	Featured *bool  `form:"featured"`

	// IncludeInactive is set by the admin surface only
	IncludeInactive bool `form:"-"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	SKU            string   `json:"sku" binding:"required"`
	Name           string   `json:"name" binding:"required,min=3"`
	Description    string   `json:"description" binding:"required,min=10"`
	Brand          string   `json:"brand" binding:"required"`
	Price          int64    `json:"price" binding:"required,gt=0"`
	CompareAtPrice int64    `json:"compare_at_price"`
	Stock          int      `json:"stock" binding:"min=0"`
	CategoryID     uint     `json:"category_id" binding:"required"`
	Images         []string `json:"images" binding:"required,min=1"`
	Specs          SpecList `json:"specs"`
	IsFeatured     bool     `json:"is_featured"`
	IsActive       *bool    `json:"is_active"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Brand          *string   `json:"brand"`
	Price          *int64    `json:"price"`
	CompareAtPrice *int64    `json:"compare_at_price"`
	Stock          *int      `json:"stock"`
	CategoryID     *uint     `json:"category_id"`
	Images         *[]string `json:"images"`
	Specs          *SpecList `json:"specs"`
	IsFeatured     *bool     `json:"is_featured"`
	IsActive       *bool     `json:"is_active"`
}

// ProductListResponse represents a product page with pagination
type ProductListResponse struct {
	Products   []Product  `json:"products"`
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

// NewPagination computes pagination info for a filtered total
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// GetProducts retrieves products with filtering, sorting and pagination.
// Filters narrow the set first, the sort key orders it, and the page is
// sliced last; Total always counts the filtered set.
func (s *Service) GetProducts(req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = s.config.Catalog.ProductsPerPage
	}

	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		})

	if !req.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if req.Category != "" {
		query = query.Where("category_id IN (?)",
			s.db.Model(&Category{}).Select("id").Where("slug = ?", req.Category))
	}

	if req.Brand != "" {
		query = query.Where("brand = ?", req.Brand)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?", search, search, search)
	}

	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if req.Featured != nil {
		query = query.Where("is_featured = ?", *req.Featured)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(BuildOrderClause(req.Sort))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return &ProductListResponse{
		Products:   products,
		Pagination: NewPagination(req.Page, req.Limit, total),
	}, nil
}

// GetFeaturedProducts retrieves active featured products
func (s *Service) GetFeaturedProducts(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = s.config.Catalog.ProductsPerPage
	}

	var products []Product
	err := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve featured products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetProductBySlug retrieves a single active product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, sort_order ASC, id ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", apperr.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	// Check SKU uniqueness up front for a clean error
	var existing Product
	if result := s.db.Where("sku = ?", req.SKU).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: product with SKU %s already exists", apperr.ErrConflict, req.SKU)
	}

	slug := s.generateSlug(req.Name)
	if result := s.db.Where("slug = ?", slug).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: product with slug %s already exists", apperr.ErrConflict, slug)
	}

	var category Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", apperr.ErrNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := Product{
		SKU:            req.SKU,
		Name:           req.Name,
		Slug:           slug,
		Description:    req.Description,
		Brand:          req.Brand,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Stock:          req.Stock,
		CategoryID:     req.CategoryID,
		Specs:          req.Specs,
		IsFeatured:     req.IsFeatured,
		IsActive:       isActive,
	}
	for i, url := range req.Images {
		product.Images = append(product.Images, ProductImage{
			URL:       url,
			SortOrder: i,
			IsPrimary: i == 0,
		})
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").Preload("Images").First(&product, product.ID)

	return &product, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = s.generateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", apperr.ErrValidation)
		}
		updates["price"] = *req.Price
	}
	if req.CompareAtPrice != nil {
		updates["compare_at_price"] = *req.CompareAtPrice
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", apperr.ErrValidation)
		}
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Specs != nil {
		updates["specs"] = *req.Specs
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		// Image lists are replaced wholesale
		if req.Images != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear product images: %w", err)
			}
			for i, url := range *req.Images {
				img := ProductImage{
					ProductID: product.ID,
					URL:       url,
					SortOrder: i,
					IsPrimary: i == 0,
				}
				if err := tx.Create(&img).Error; err != nil {
					return fmt.Errorf("failed to create product image: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Category").Preload("Images").First(&product, product.ID)

	return &product, nil
}

// DeleteProduct soft deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", apperr.ErrNotFound, id)
	}
	return nil
}

// generateSlug generates a URL-friendly slug from a product name
func (s *Service) generateSlug(name string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
