package controllers

import (
	"fmt"
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// AdminListOrders lists all orders with optional status filter
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.BadRequest(c, "Invalid status filter", nil)
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Preload("User").
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		items = append(items, gin.H{
			"id":             order.ID,
			"order_number":   order.OrderNumber,
			"user_id":        order.UserID,
			"username":       order.User.Username,
			"final_total":    fmt.Sprintf("%.2f", order.FinalTotal),
			"status":         order.Status,
			"payment_method": order.PaymentMethod,
			"created_at":     order.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, pagination.Page, pagination.Limit)
}

// AdminGetOrderDetails returns any order with its items
func AdminGetOrderDetails(c *gin.Context) {
	utils.LogInfo("AdminGetOrderDetails called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", orderDetailPayload(&order))
}

// UpdateOrderStatus moves an order along the fulfilment flow. Only
// forward transitions are allowed.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "status", Message: "Unknown order status"}})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		utils.LogError("Invalid transition for order ID: %d: %s -> %s", order.ID, order.Status, req.Status)
		utils.RespondAppError(c, utils.BusinessRuleError("invalid_status_transition",
			fmt.Sprintf("Order cannot move from %s to %s", order.Status, req.Status)))
		return
	}

	if err := config.DB.Model(&order).UpdateColumn("status", req.Status).Error; err != nil {
		utils.LogError("Failed to update order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	utils.LogInfo("Order ID: %d moved from %s to %s", order.ID, order.Status, req.Status)
	utils.Success(c, "Order status updated successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       req.Status,
	})
}
