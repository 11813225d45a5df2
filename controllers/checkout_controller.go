package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceOrderItem is a single line the client sends with an order.
type PlaceOrderItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// PlaceOrderRequest represents the request body for placing an order.
// Items are optional: when omitted the server uses the persisted
// cart. TotalAmount is required and must match the server's repriced
// total.
type PlaceOrderRequest struct {
	AddressID     uint             `json:"address_id" binding:"required"`
	CouponCode    string           `json:"coupon_code"`
	Items         []PlaceOrderItem `json:"items"`
	TotalAmount   *float64         `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
}

// GetCheckoutSummary reprices the cart and previews order totals
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	lines, err := utils.LoadCartLines(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to load cart for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	priced, appErr := utils.RepriceLines(config.DB, lines)
	if appErr != nil {
		utils.RespondAppError(c, appErr)
		return
	}

	subtotal := utils.SumLines(priced)

	var discount float64
	couponCode := strings.ToUpper(strings.TrimSpace(c.Query("coupon_code")))
	if couponCode != "" {
		var coupon models.Coupon
		if err := config.DB.Where("code = ?", couponCode).First(&coupon).Error; err != nil {
			utils.NotFound(c, "Coupon not found")
			return
		}
		discount, appErr = utils.EvaluateCoupon(&coupon, subtotal, time.Now())
		if appErr != nil {
			utils.RespondAppError(c, appErr)
			return
		}
	}

	shipping := config.App.ShippingFlatRate
	tax := utils.RoundMoney((subtotal - discount) * config.App.TaxRate)
	finalTotal := utils.RoundMoney(subtotal - discount + shipping + tax)

	items := make([]gin.H, 0, len(priced))
	for _, line := range priced {
		items = append(items, gin.H{
			"product_id":   line.ProductID,
			"variant_id":   line.VariantID,
			"name":         line.ProductName,
			"variant_name": line.VariantName,
			"quantity":     line.Quantity,
			"unit_price":   fmt.Sprintf("%.2f", line.UnitPrice),
			"item_total":   fmt.Sprintf("%.2f", line.LineTotal),
		})
	}

	var addresses []models.Address
	config.DB.Where("user_id = ?", user.ID).Order("is_default desc, id").Find(&addresses)

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"items":           items,
		"subtotal":        fmt.Sprintf("%.2f", subtotal),
		"coupon_discount": fmt.Sprintf("%.2f", discount),
		"shipping_charge": fmt.Sprintf("%.2f", shipping),
		"tax":             fmt.Sprintf("%.2f", tax),
		"final_total":     fmt.Sprintf("%.2f", finalTotal),
		"addresses":       addresses,
	})
}

// PlaceOrder places an order inside a single transaction: reprice,
// stock check, coupon, totals, order insert, stock decrement, coupon
// consumption, cart clear. Any failure rolls the whole thing back.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID := user.ID

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", userID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if paymentMethod == "" {
		paymentMethod = "cod"
	}
	if paymentMethod != "cod" && paymentMethod != "razorpay" {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "payment_method", Message: "Payment method must be 'cod' or 'razorpay'"}})
		return
	}

	if req.TotalAmount == nil {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "total_amount", Message: "Total amount is required"}})
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		utils.LogError("Address not found: %d for user ID: %d", req.AddressID, userID)
		utils.NotFound(c, "Address not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", userID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	lines, usedPersistedCart, err := orderLines(tx, userID, req.Items)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to load cart for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to load cart", nil)
		return
	}

	// Lock the product rows for the whole reprice-and-decrement window
	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	if len(productIDs) > 0 {
		var locked []models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id IN ?", productIDs).Find(&locked).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to lock product rows for user ID: %d: %v", userID, err)
			utils.InternalServerError(c, "Failed to process order", nil)
			return
		}
	}

	priced, appErr := utils.RepriceLines(tx, lines)
	if appErr != nil {
		tx.Rollback()
		utils.LogError("Reprice failed for user ID: %d: %s", userID, appErr.Message)
		utils.RespondAppError(c, appErr)
		return
	}

	for _, line := range priced {
		if line.Stock < line.Quantity {
			tx.Rollback()
			utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d", line.ProductID, line.Quantity, line.Stock)
			utils.RespondAppError(c, utils.ConflictAppError("insufficient_stock",
				fmt.Sprintf("Not enough stock for '%s'. Available: %d", line.ProductName, line.Stock)))
			return
		}
	}

	subtotal := utils.SumLines(priced)

	// Coupon evaluation happens against server-side prices only
	var coupon *models.Coupon
	var discount float64
	if req.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(req.CouponCode))
		var found models.Coupon
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("code = ?", code).First(&found).Error; err != nil {
			tx.Rollback()
			utils.LogError("Coupon not found: %s", code)
			utils.NotFound(c, "Coupon not found")
			return
		}
		discount, appErr = utils.EvaluateCoupon(&found, subtotal, time.Now())
		if appErr != nil {
			tx.Rollback()
			utils.LogError("Coupon %s rejected for user ID: %d: %s", code, userID, appErr.Code)
			utils.RespondAppError(c, appErr)
			return
		}
		coupon = &found
	}

	shipping := config.App.ShippingFlatRate
	tax := utils.RoundMoney((subtotal - discount) * config.App.TaxRate)
	finalTotal := utils.RoundMoney(subtotal - discount + shipping + tax)

	// The client's declared total must match the server's number
	if appErr := utils.ValidateDeclaredTotal(finalTotal, *req.TotalAmount); appErr != nil {
		tx.Rollback()
		utils.LogError("Total mismatch for user ID: %d, declared: %.2f, computed: %.2f", userID, *req.TotalAmount, finalTotal)
		utils.RespondAppError(c, appErr)
		return
	}

	order := models.Order{
		OrderNumber:    utils.GenerateOrderNumber(time.Now()),
		UserID:         userID,
		AddressID:      address.ID,
		Subtotal:       subtotal,
		CouponDiscount: discount,
		ShippingCharge: shipping,
		Tax:            tax,
		FinalTotal:     finalTotal,
		PaymentMethod:  paymentMethod,
		Status:         models.OrderStatusPending,
	}
	if coupon != nil {
		order.CouponID = coupon.ID
		order.CouponCode = coupon.Code
	}
	for _, line := range priced {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: line.ProductName,
			VariantName: line.VariantName,
			Price:       line.UnitPrice,
			Quantity:    line.Quantity,
			Total:       line.LineTotal,
		})
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	if appErr := decrementStock(tx, priced); appErr != nil {
		tx.Rollback()
		utils.RespondAppError(c, appErr)
		return
	}

	if coupon != nil {
		if appErr := consumeCoupon(tx, coupon, userID, order.ID); appErr != nil {
			tx.Rollback()
			utils.RespondAppError(c, appErr)
			return
		}
	}

	if usedPersistedCart {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to clear cart for user ID: %d: %v", userID, err)
			utils.InternalServerError(c, "Failed to clear cart", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order for user ID: %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	utils.LogInfo("Placed order %s (ID: %d) for user ID: %d, total: %.2f", order.OrderNumber, order.ID, userID, finalTotal)

	// Confirmation email failure must not fail the placed order
	go func(email string, placed models.Order) {
		if err := utils.SendOrderConfirmation(email, &placed); err != nil {
			utils.LogError("Failed to send order confirmation for order ID: %d: %v", placed.ID, err)
		}
	}(user.Email, order)

	utils.Created(c, "Order placed successfully", gin.H{
		"order_id":        order.ID,
		"order_number":    order.OrderNumber,
		"subtotal":        fmt.Sprintf("%.2f", order.Subtotal),
		"coupon_discount": fmt.Sprintf("%.2f", order.CouponDiscount),
		"shipping_charge": fmt.Sprintf("%.2f", order.ShippingCharge),
		"tax":             fmt.Sprintf("%.2f", order.Tax),
		"final_total":     fmt.Sprintf("%.2f", order.FinalTotal),
		"payment_method":  order.PaymentMethod,
		"status":          order.Status,
	})
}

// orderLines resolves what the order covers: the request items, or
// the persisted cart when the client sends none. The bool reports
// whether the persisted cart was used so it gets cleared on commit.
func orderLines(tx *gorm.DB, userID uint, items []PlaceOrderItem) ([]utils.CartLine, bool, error) {
	if len(items) > 0 {
		lines := make([]utils.CartLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, utils.CartLine{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
		return lines, false, nil
	}

	lines, err := utils.LoadCartLines(tx, userID)
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

// decrementStock applies guarded decrements: the WHERE clause
// re-checks stock so a concurrent order can never push it negative.
func decrementStock(tx *gorm.DB, priced []utils.PricedLine) *utils.AppError {
	for _, line := range priced {
		var result *gorm.DB
		if line.VariantID != 0 {
			result = tx.Model(&models.ProductVariant{}).
				Where("id = ? AND stock >= ?", line.VariantID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		} else {
			result = tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		}
		if result.Error != nil {
			utils.LogError("Failed to decrement stock for product ID: %d: %v", line.ProductID, result.Error)
			return utils.InternalAppError("Failed to update stock", result.Error)
		}
		if result.RowsAffected == 0 {
			utils.LogError("Stock changed under order for product ID: %d", line.ProductID)
			return utils.ConflictAppError("insufficient_stock",
				fmt.Sprintf("'%s' just sold out. Please review your cart.", line.ProductName))
		}
	}
	return nil
}

// consumeCoupon increments used_count with the usage limit re-checked
// in the WHERE clause, so concurrent orders cannot overspend it, then
// records the redemption.
func consumeCoupon(tx *gorm.DB, coupon *models.Coupon, userID, orderID uint) *utils.AppError {
	result := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		utils.LogError("Failed to consume coupon ID: %d: %v", coupon.ID, result.Error)
		return utils.InternalAppError("Failed to apply coupon", result.Error)
	}
	if result.RowsAffected == 0 {
		utils.LogError("Coupon %s exhausted under order for user ID: %d", coupon.Code, userID)
		return utils.ConflictAppError("coupon_usage_limit_reached",
			"This coupon has reached its usage limit")
	}

	userCoupon := models.UserCoupon{
		UserID:   userID,
		CouponID: coupon.ID,
		OrderID:  orderID,
		UsedAt:   time.Now(),
	}
	if err := tx.Create(&userCoupon).Error; err != nil {
		utils.LogError("Failed to record coupon use for user ID: %d: %v", userID, err)
		return utils.InternalAppError("Failed to apply coupon", err)
	}
	return nil
}
