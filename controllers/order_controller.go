package controllers

import (
	"fmt"
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOrders lists the user's orders newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, gin.H{
			"id":             order.ID,
			"order_number":   order.OrderNumber,
			"final_total":    fmt.Sprintf("%.2f", order.FinalTotal),
			"status":         order.Status,
			"payment_method": order.PaymentMethod,
			"created_at":     order.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// orderDetailPayload builds the full order view with item snapshots
func orderDetailPayload(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"product_id":   item.ProductID,
			"variant_id":   item.VariantID,
			"name":         item.ProductName,
			"variant_name": item.VariantName,
			"price":        fmt.Sprintf("%.2f", item.Price),
			"quantity":     item.Quantity,
			"total":        fmt.Sprintf("%.2f", item.Total),
		})
	}

	return gin.H{
		"id":                  order.ID,
		"order_number":        order.OrderNumber,
		"items":               items,
		"subtotal":            fmt.Sprintf("%.2f", order.Subtotal),
		"coupon_code":         order.CouponCode,
		"coupon_discount":     fmt.Sprintf("%.2f", order.CouponDiscount),
		"shipping_charge":     fmt.Sprintf("%.2f", order.ShippingCharge),
		"tax":                 fmt.Sprintf("%.2f", order.Tax),
		"final_total":         fmt.Sprintf("%.2f", order.FinalTotal),
		"payment_method":      order.PaymentMethod,
		"status":              order.Status,
		"cancellation_reason": order.CancellationReason,
		"created_at":          order.CreatedAt,
	}
}

// GetOrderDetails returns one of the user's orders with its items
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error; err != nil {
		utils.LogError("Order not found: %d for user ID: %d", id, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", orderDetailPayload(&order))
}

// CancelOrder cancels an order that has not shipped and restores
// the stock it had reserved.
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var order models.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, models.OrderStatusCancelled) {
		tx.Rollback()
		utils.LogError("Cannot cancel order ID: %d in status %s", order.ID, order.Status)
		utils.RespondAppError(c, utils.BusinessRuleError("invalid_status_transition",
			fmt.Sprintf("Order cannot be cancelled while %s", order.Status)))
		return
	}

	// Put the reserved stock back
	for _, item := range order.OrderItems {
		var result *gorm.DB
		if item.VariantID != 0 {
			result = tx.Model(&models.ProductVariant{}).
				Where("id = ?", item.VariantID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))
		} else {
			result = tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))
		}
		if result.Error != nil {
			tx.Rollback()
			utils.LogError("Failed to restore stock for product ID: %d: %v", item.ProductID, result.Error)
			utils.InternalServerError(c, "Failed to restore stock", nil)
			return
		}
	}

	updates := map[string]interface{}{
		"status":              models.OrderStatusCancelled,
		"cancellation_reason": req.Reason,
	}
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to cancel order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel order", nil)
		return
	}

	utils.LogInfo("Cancelled order ID: %d for user ID: %d", order.ID, user.ID)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       models.OrderStatusCancelled,
	})
}
