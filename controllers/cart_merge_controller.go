package controllers

import (
	"fmt"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// MergeCartRequest carries the cart a client accumulated before
// logging in, typically from local storage on the device.
type MergeCartRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		VariantID uint `json:"variant_id"`
		Quantity  int  `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
}

// MergeCart folds a guest cart into the user's persisted cart.
// Quantities for the same (product, variant) pair are summed, new
// pairs are appended, and every merged line is revalidated against
// the live catalog before being written.
func MergeCart(c *gin.Context) {
	utils.LogInfo("MergeCart called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid merge request for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	incoming := make([]utils.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		incoming = append(incoming, utils.CartLine{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	existing, err := utils.LoadCartLines(config.DB, userID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	merged := utils.MergeCartLines(existing, incoming)
	utils.LogInfo("Merging %d incoming lines into %d existing lines for user ID: %d, result: %d lines", len(incoming), len(existing), userID, len(merged))

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	skipped := make([]gin.H, 0)
	kept := 0
	for _, line := range merged {
		_, stock, productName, _, appErr := utils.ResolveSaleLine(tx, line.ProductID, line.VariantID)
		if appErr != nil {
			// Unavailable lines are dropped from the merge, not fatal
			skipped = append(skipped, gin.H{
				"product_id": line.ProductID,
				"variant_id": line.VariantID,
				"reason":     appErr.Message,
			})
			continue
		}

		quantity := line.Quantity
		if quantity > maxQuantityPerLine {
			quantity = maxQuantityPerLine
		}
		if quantity > stock {
			if stock < 1 {
				skipped = append(skipped, gin.H{
					"product_id": line.ProductID,
					"variant_id": line.VariantID,
					"reason":     fmt.Sprintf("'%s' is out of stock", productName),
				})
				continue
			}
			quantity = stock
		}

		var cartItem models.Cart
		if err := tx.Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, line.ProductID, line.VariantID).First(&cartItem).Error; err == nil {
			if err := tx.Model(&cartItem).UpdateColumn("quantity", quantity).Error; err != nil {
				tx.Rollback()
				utils.LogError("Failed to update merged cart line for user ID: %d: %v", userID, err)
				utils.InternalServerError(c, "Failed to merge cart", nil)
				return
			}
		} else {
			newItem := models.Cart{
				UserID:    userID,
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  quantity,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				tx.Rollback()
				utils.LogError("Failed to create merged cart line for user ID: %d: %v", userID, err)
				utils.InternalServerError(c, "Failed to merge cart", nil)
				return
			}
		}
		kept++
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit cart merge for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to merge cart", nil)
		return
	}

	payload, err := cartSummaryPayload(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch merged cart", nil)
		return
	}
	payload["merged_lines"] = kept
	payload["skipped_items"] = skipped

	utils.LogInfo("Merged cart for user ID: %d, kept %d lines, skipped %d", userID, kept, len(skipped))
	utils.Success(c, "Cart merged successfully", payload)
}
