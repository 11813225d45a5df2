package utils

import (
	"fmt"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"gorm.io/gorm"
)

// CartDetails holds a user's cart with all server-side pricing applied
type CartDetails struct {
	Lines    []PricedLine
	Subtotal float64
}

// LoadCartLines loads the persisted cart for a user as plain cart lines
func LoadCartLines(db *gorm.DB, userID uint) ([]CartLine, error) {
	if db == nil {
		db = config.DB
	}
	var cartItems []models.Cart
	if err := db.Where("user_id = ?", userID).Order("id").Find(&cartItems).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %v", err)
	}

	lines := make([]CartLine, 0, len(cartItems))
	for _, item := range cartItems {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// GetCartDetails loads and reprices a user's persisted cart. Lines
// whose product has gone missing or been blocked since it was added are
// skipped rather than failing the whole cart view.
func GetCartDetails(userID uint) (*CartDetails, error) {
	lines, err := LoadCartLines(nil, userID)
	if err != nil {
		return nil, err
	}

	details := &CartDetails{}
	for _, line := range lines {
		unitPrice, stock, productName, variantName, appErr := ResolveSaleLine(nil, line.ProductID, line.VariantID)
		if appErr != nil {
			continue
		}
		priced := PricedLine{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: productName,
			VariantName: variantName,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			Stock:       stock,
			LineTotal:   RoundMoney(unitPrice * float64(line.Quantity)),
		}
		details.Lines = append(details.Lines, priced)
		details.Subtotal += unitPrice * float64(line.Quantity)
	}
	details.Subtotal = RoundMoney(details.Subtotal)

	return details, nil
}
