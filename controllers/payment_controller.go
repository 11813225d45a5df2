package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// InitiatePayment creates a Razorpay order for a placed order
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentMethod != "razorpay" {
		utils.BadRequest(c, "Order is not payable online", nil)
		return
	}
	if order.Status != models.OrderStatusPending {
		utils.BadRequest(c, "Order is not awaiting payment", nil)
		return
	}

	var existing models.Payment
	if err := config.DB.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusCompleted).First(&existing).Error; err == nil {
		utils.Conflict(c, "Order is already paid", nil)
		return
	}

	client := razorpay.NewClient(config.App.RazorpayKeyID, config.App.RazorpayKeySecret)

	// Razorpay amounts are in the smallest currency unit
	data := map[string]interface{}{
		"amount":   utils.ToMinorUnits(order.FinalTotal),
		"currency": "INR",
		"receipt":  order.OrderNumber,
	}
	rzpOrder, err := client.Order.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	rzpOrderID, _ := rzpOrder["id"].(string)

	payment := models.Payment{
		OrderID:         order.ID,
		RazorpayOrderID: rzpOrderID,
		Amount:          order.FinalTotal,
		Status:          models.PaymentStatusPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	utils.LogInfo("Initiated payment for order ID: %d, Razorpay order: %s", order.ID, rzpOrderID)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"razorpay_order_id": rzpOrderID,
		"razorpay_key_id":   config.App.RazorpayKeyID,
		"amount":            fmt.Sprintf("%.2f", order.FinalTotal),
		"currency":          "INR",
		"order_number":      order.OrderNumber,
	})
}

// VerifyPayment checks the Razorpay signature and marks the order paid
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&payment).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", payment.OrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	// Signature covers "<order_id>|<payment_id>" with the key secret
	mac := hmac.New(sha256.New, []byte(config.App.RazorpayKeySecret))
	mac.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		config.DB.Model(&payment).UpdateColumn("status", models.PaymentStatusFailed)
		utils.LogError("Invalid payment signature for order ID: %d", order.ID)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if err := tx.Model(&payment).Updates(map[string]interface{}{
		"razorpay_payment_id": req.RazorpayPaymentID,
		"status":              models.PaymentStatusCompleted,
	}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	if order.Status == models.OrderStatusPending {
		if err := tx.Model(&order).UpdateColumn("status", models.OrderStatusProcessing).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update order status for order ID: %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to update order", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to record payment", nil)
		return
	}

	utils.LogInfo("Verified payment for order ID: %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       models.OrderStatusProcessing,
	})
}
