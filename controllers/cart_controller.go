package controllers

import (
	"fmt"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// Maximum copies of one (product, variant) line in a cart
const maxQuantityPerLine = 10

// currentUser pulls the authenticated user out of the Gin context
func currentUser(c *gin.Context) (*models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return nil, false
	}
	return &user, true
}

// cartSummaryPayload builds the response body shared by the cart
// endpoints: repriced lines plus the subtotal.
func cartSummaryPayload(userID uint) (gin.H, error) {
	details, err := utils.GetCartDetails(userID)
	if err != nil {
		return nil, err
	}

	items := make([]gin.H, 0, len(details.Lines))
	canCheckout := len(details.Lines) > 0
	for _, line := range details.Lines {
		if line.Stock < line.Quantity {
			canCheckout = false
		}
		items = append(items, gin.H{
			"product_id":   line.ProductID,
			"variant_id":   line.VariantID,
			"name":         line.ProductName,
			"variant_name": line.VariantName,
			"quantity":     line.Quantity,
			"unit_price":   fmt.Sprintf("%.2f", line.UnitPrice),
			"item_total":   fmt.Sprintf("%.2f", line.LineTotal),
			"stock_status": func() string {
				if line.Stock < line.Quantity {
					return "Out of Stock"
				}
				if line.Stock <= 3 {
					return "Only a few left"
				}
				return "In Stock"
			}(),
		})
	}

	return gin.H{
		"cart":         items,
		"subtotal":     fmt.Sprintf("%.2f", details.Subtotal),
		"can_checkout": canCheckout,
	}, nil
}

// AddToCart adds a product (optionally a specific variant) to the cart
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		VariantID uint `json:"variant_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.Quantity > maxQuantityPerLine {
		req.Quantity = maxQuantityPerLine
	}
	utils.LogInfo("Adding product ID: %d variant ID: %d quantity: %d to cart for user ID: %d", req.ProductID, req.VariantID, req.Quantity, userID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", userID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	_, stock, productName, _, appErr := utils.ResolveSaleLine(tx, req.ProductID, req.VariantID)
	if appErr != nil {
		tx.Rollback()
		utils.LogError("Cannot add product ID: %d to cart for user ID: %d: %s", req.ProductID, userID, appErr.Message)
		utils.RespondAppError(c, appErr)
		return
	}

	if stock < 1 {
		tx.Rollback()
		utils.LogError("Product ID: %d is out of stock", req.ProductID)
		utils.BadRequest(c, "Product out of stock", nil)
		return
	}

	// Existing line for the same (product, variant) absorbs the new
	// quantity instead of creating a duplicate row.
	var existingCart models.Cart
	totalRequestedQuantity := req.Quantity
	if err := tx.Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, req.ProductID, req.VariantID).First(&existingCart).Error; err == nil {
		totalRequestedQuantity += existingCart.Quantity
		utils.LogInfo("Found existing cart line for product ID: %d, current quantity: %d", req.ProductID, existingCart.Quantity)
	}

	if totalRequestedQuantity > maxQuantityPerLine {
		tx.Rollback()
		utils.LogError("Quantity exceeds max limit for product ID: %d, requested: %d", req.ProductID, totalRequestedQuantity)
		utils.BadRequest(c, fmt.Sprintf("Cannot add more than %d units of the same item", maxQuantityPerLine), nil)
		return
	}

	if totalRequestedQuantity > stock {
		tx.Rollback()
		utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d", req.ProductID, totalRequestedQuantity, stock)
		utils.BadRequest(c, fmt.Sprintf("Not enough stock for '%s'. Available: %d", productName, stock), nil)
		return
	}

	// Remove from wishlist if present
	if err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).Delete(&models.Wishlist{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to remove from wishlist for product ID: %d: %v", req.ProductID, err)
		utils.InternalServerError(c, "Failed to update wishlist", nil)
		return
	}

	var successMessage string
	if existingCart.ID != 0 {
		existingCart.Quantity = totalRequestedQuantity
		if err := tx.Save(&existingCart).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update cart for product ID: %d: %v", req.ProductID, err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
		successMessage = "Cart item quantity updated"
	} else {
		newCart := models.Cart{
			UserID:    userID,
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
		}
		if err := tx.Create(&newCart).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to add to cart for product ID: %d: %v", req.ProductID, err)
			utils.InternalServerError(c, "Failed to add to cart", nil)
			return
		}
		successMessage = "Item added to cart successfully"
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to complete cart update", nil)
		return
	}

	payload, err := cartSummaryPayload(userID)
	if err != nil {
		utils.LogError("Failed to fetch updated cart for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to fetch updated cart", nil)
		return
	}

	utils.LogInfo("Cart updated for user ID: %d", userID)
	utils.Success(c, successMessage, payload)
}

// GetCart returns the user's cart with live pricing
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	payload, err := cartSummaryPayload(user.ID)
	if err != nil {
		utils.LogError("Failed to fetch cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	utils.Success(c, "Cart retrieved successfully", payload)
}

// UpdateCart sets the quantity for one cart line
func UpdateCart(c *gin.Context) {
	utils.LogInfo("UpdateCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		VariantID uint `json:"variant_id"`
		Quantity  int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Quantity < 1 || req.Quantity > maxQuantityPerLine {
		utils.BadRequest(c, fmt.Sprintf("Quantity must be between 1 and %d", maxQuantityPerLine), nil)
		return
	}

	var cartItem models.Cart
	if err := config.DB.Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, req.ProductID, req.VariantID).First(&cartItem).Error; err != nil {
		utils.LogError("Cart line not found for product ID: %d, user ID: %d", req.ProductID, userID)
		utils.NotFound(c, "Item not in cart")
		return
	}

	_, stock, productName, _, appErr := utils.ResolveSaleLine(nil, req.ProductID, req.VariantID)
	if appErr != nil {
		utils.RespondAppError(c, appErr)
		return
	}
	if req.Quantity > stock {
		utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d", req.ProductID, req.Quantity, stock)
		utils.BadRequest(c, fmt.Sprintf("Not enough stock for '%s'. Available: %d", productName, stock), nil)
		return
	}

	if err := config.DB.Model(&cartItem).UpdateColumn("quantity", req.Quantity).Error; err != nil {
		utils.LogError("Failed to update cart line for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to update cart", nil)
		return
	}

	payload, err := cartSummaryPayload(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch updated cart", nil)
		return
	}

	utils.LogInfo("Updated cart quantity for product ID: %d, user ID: %d", req.ProductID, userID)
	utils.Success(c, "Cart updated successfully", payload)
}

// RemoveFromCart deletes one line from the cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		VariantID uint `json:"variant_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	result := config.DB.Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, req.ProductID, req.VariantID).Delete(&models.Cart{})
	if result.Error != nil {
		utils.LogError("Failed to remove cart line for user ID: %d: %v", userID, result.Error)
		utils.InternalServerError(c, "Failed to remove item", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Item not in cart")
		return
	}

	payload, err := cartSummaryPayload(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch updated cart", nil)
		return
	}

	utils.LogInfo("Removed product ID: %d from cart for user ID: %d", req.ProductID, userID)
	utils.Success(c, "Item removed from cart", payload)
}

// ClearCart empties the user's cart
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		utils.LogError("Failed to clear cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", nil)
		return
	}

	utils.LogInfo("Cleared cart for user ID: %d", user.ID)
	utils.Success(c, "Cart cleared successfully", gin.H{
		"cart":         []gin.H{},
		"subtotal":     "0.00",
		"can_checkout": false,
	})
}
