package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// ValidateCouponRequest represents a coupon dry-run request. The
// order total may be sent directly or derived from cart items.
type ValidateCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total"`
	CartItems  []struct {
		ProductID uint `json:"product_id" binding:"required"`
		VariantID uint `json:"variant_id"`
		Quantity  int  `json:"quantity" binding:"required"`
	} `json:"cart_items"`
}

// ValidateCoupon checks a coupon against an order total without
// consuming it. used_count is only incremented at order placement.
func ValidateCoupon(c *gin.Context) {
	utils.LogInfo("ValidateCoupon called")

	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon validation request: %v", err)
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "code", Message: "Code is required"}})
		return
	}

	orderTotal := req.OrderTotal
	if orderTotal <= 0 && len(req.CartItems) > 0 {
		// Server-side prices, never the client's
		lines := make([]utils.CartLine, 0, len(req.CartItems))
		for _, item := range req.CartItems {
			lines = append(lines, utils.CartLine{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
		priced, appErr := utils.RepriceLines(config.DB, lines)
		if appErr != nil {
			utils.RespondAppError(c, appErr)
			return
		}
		orderTotal = utils.SumLines(priced)
	}

	if orderTotal <= 0 {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "order_total", Message: "Order total must be greater than zero"}})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var coupon models.Coupon
	if err := config.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		utils.LogError("Coupon not found: %s", code)
		utils.NotFound(c, "Coupon not found")
		return
	}

	discount, appErr := utils.EvaluateCoupon(&coupon, orderTotal, time.Now())
	if appErr != nil {
		utils.LogInfo("Coupon %s rejected: %s", code, appErr.Code)
		utils.RespondAppError(c, appErr)
		return
	}

	finalTotal := utils.RoundMoney(orderTotal - discount)

	utils.LogInfo("Coupon %s valid, discount: %.2f", code, discount)
	utils.Success(c, "Coupon is valid", gin.H{
		"is_valid":        true,
		"code":            coupon.Code,
		"type":            coupon.Type,
		"order_total":     fmt.Sprintf("%.2f", orderTotal),
		"discount_amount": fmt.Sprintf("%.2f", discount),
		"final_total":     fmt.Sprintf("%.2f", finalTotal),
	})
}
