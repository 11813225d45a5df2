package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	IsBlocked    bool      `json:"is_blocked"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt  time.Time `json:"last_login_at"`
	GoogleID     string    `gorm:"default:null" json:"google_id"`

	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
	Blocked     bool      `json:"blocked" gorm:"default:false"`
}

// Product represents a catalog product
type Product struct {
	gorm.Model
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	SKU         string           `json:"sku" gorm:"uniqueIndex"`
	CategoryID  uint             `json:"category_id"`
	Category    Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string           `json:"image_url"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	IsActive    bool             `json:"is_active" gorm:"default:true"`
	IsFeatured  bool             `json:"is_featured" gorm:"default:false"`
	Blocked     bool             `json:"blocked" gorm:"default:false"`

	Reviews       []Review `json:"reviews,omitempty"`
	AverageRating float64  `json:"average_rating" gorm:"default:0"`
	TotalReviews  int      `json:"total_reviews" gorm:"default:0"`
}

// ProductVariant represents a purchasable variation of a product,
// for example a size or colour. A variant carries its own price and
// stock; products without variants sell from the product row itself.
type ProductVariant struct {
	gorm.Model
	ProductID uint    `json:"product_id" gorm:"index"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	IsActive  bool    `json:"is_active" gorm:"default:true"`
}

// Review represents a product review
type Review struct {
	gorm.Model
	ProductID  uint   `json:"product_id"`
	UserID     uint   `json:"user_id"`
	User       User   `json:"user"`
	Rating     int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment    string `json:"comment"`
	IsApproved bool   `json:"is_approved" gorm:"default:false"`
}

// Cart is one line in a user's persisted cart. VariantID 0 means the
// line was added against the bare product; a non-zero VariantID is a
// distinct line even for the same product.
type Cart struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index:idx_cart_user_product_variant,unique"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint    `json:"product_id" gorm:"index:idx_cart_user_product_variant,unique"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	VariantID uint    `json:"variant_id" gorm:"index:idx_cart_user_product_variant,unique"`
	Quantity  int     `json:"quantity"`
}

// Wishlist represents a saved-for-later product
type Wishlist struct {
	gorm.Model
	UserID    uint    `json:"user_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

// BlacklistedToken stores JWTs invalidated by logout
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
