// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// CartItem represents a cart line stored in the database for authenticated
// users. Prices are not stored; lines always price at the current catalog
// price.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uint           `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a guest cart stored in Redis
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents a guest cart line
type SessionCartItem struct {
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Add folds quantity into an existing line for the product, or appends a new
// line. Adding the same product twice accumulates its quantity.
func (c *SessionCart) Add(productID uint, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
	c.Items = append(c.Items, SessionCartItem{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	c.UpdatedAt = time.Now()
}

// SetQuantity replaces the quantity of an existing line. Setting zero removes
// the line. Returns false when the product is not in the cart.
func (c *SessionCart) SetQuantity(productID uint, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Remove deletes the line for the product. Removing an absent product is a
// no-op.
func (c *SessionCart) Remove(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear removes all lines
func (c *SessionCart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// TotalQuantity returns the sum of quantities across lines
func (c *SessionCart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
