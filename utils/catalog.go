package utils

import (
	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"gorm.io/gorm"
)

// GetProductForSale loads a product and verifies it can currently be
// bought: it must exist, be active, not be blocked, and its category
// must not be blocked.
func GetProductForSale(db *gorm.DB, productID uint) (*models.Product, *AppError) {
	if db == nil {
		db = config.DB
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, NotFoundAppError("product_not_found", "Product not found")
	}

	if !product.IsActive || product.Blocked {
		return nil, BusinessRuleError("product_unavailable", "Product not available or blocked by admin")
	}

	if product.CategoryID != 0 {
		var category models.Category
		if err := db.First(&category, product.CategoryID).Error; err == nil && category.Blocked {
			return nil, BusinessRuleError("category_blocked", "Category blocked by admin")
		}
	}

	return &product, nil
}

// ResolveSaleLine resolves the server-trusted unit price, available
// stock and display names for a (product, variant) pair. A zero
// variantID sells from the product row itself.
func ResolveSaleLine(db *gorm.DB, productID, variantID uint) (unitPrice float64, stock int, productName, variantName string, appErr *AppError) {
	product, appErr := GetProductForSale(db, productID)
	if appErr != nil {
		return 0, 0, "", "", appErr
	}

	if variantID == 0 {
		return product.Price, product.Stock, product.Name, "", nil
	}

	if db == nil {
		db = config.DB
	}
	var variant models.ProductVariant
	if err := db.Where("id = ? AND product_id = ?", variantID, productID).First(&variant).Error; err != nil {
		return 0, 0, "", "", NotFoundAppError("variant_not_found", "Product variant not found")
	}
	if !variant.IsActive {
		return 0, 0, "", "", BusinessRuleError("variant_unavailable", "Product variant not available")
	}

	return variant.Price, variant.Stock, product.Name, variant.Name, nil
}
