// internal/domain/product/entity.go
package product

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Category represents a product category
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"size:500" json:"image"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName returns the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Spec is a single display specification of a product
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecList stores product specs as a JSON text column, keeping display order
type SpecList []Spec

// Value implements driver.Valuer
func (s SpecList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal specs: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *SpecList) Scan(value interface{}) error {
	if value == nil {
		*s = SpecList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported specs column type %T", value)
	}

	if len(data) == 0 {
		*s = SpecList{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Get returns the value for a spec key
func (s SpecList) Get(key string) (string, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec.Value, true
		}
	}
	return "", false
}

// Product represents a catalog product. Monetary fields are in cents.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	SKU            string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Slug           string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	Brand          string         `gorm:"size:100;index" json:"brand"`
	Price          int64          `gorm:"not null" json:"price"`
	CompareAtPrice int64          `json:"compare_at_price,omitempty"`
	Stock          int            `gorm:"default:0" json:"stock"`
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	Rating         float64        `gorm:"default:0" json:"rating"`
	ReviewCount    int            `gorm:"default:0" json:"review_count"`
	Specs          SpecList       `gorm:"type:text" json:"specs"`
	IsFeatured     bool           `gorm:"default:false" json:"is_featured"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews  []Review       `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// TableName returns the table name for Product model
func (Product) TableName() string {
	return "products"
}

// IsInStock checks if the product has stock available
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// IsOnSale checks if the product has a markdown price
func (p *Product) IsOnSale() bool {
	return p.CompareAtPrice > p.Price && p.CompareAtPrice > 0
}

// GetDiscountPercentage returns the markdown percentage against the compare-at price
func (p *Product) GetDiscountPercentage() float64 {
	if !p.IsOnSale() {
		return 0
	}
	return float64(p.CompareAtPrice-p.Price) / float64(p.CompareAtPrice) * 100
}

// PrimaryImage returns the primary image URL, falling back to the first image
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// ProductImage represents a product image
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}

// Review represents a customer review of a product
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Rating    int            `gorm:"not null" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for Review model
func (Review) TableName() string {
	return "reviews"
}
