package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// CreateCouponRequest represents the request body for creating a coupon
type CreateCouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Value         float64 `json:"value" binding:"required"`
	MinOrderValue float64 `json:"min_order_value"`
	MaxDiscount   float64 `json:"max_discount"`
	ValidFrom     string  `json:"valid_from"`
	Expiry        string  `json:"expiry" binding:"required"`
	UsageLimit    int     `json:"usage_limit"`
}

func parseCouponDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// CreateCoupon creates a new coupon
func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if len(code) < 3 || len(code) > 20 {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "code", Message: "Code must be between 3 and 20 characters"}})
		return
	}

	couponType := strings.ToLower(req.Type)
	if couponType != models.CouponTypePercent && couponType != models.CouponTypeFlat {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "type", Message: "Type must be 'percent' or 'flat'"}})
		return
	}

	if err := utils.ValidateCouponValue(couponType, req.Value); err != nil {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "value", Message: err.Error()}})
		return
	}

	if req.MinOrderValue < 0 {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "min_order_value", Message: "Minimum order value cannot be negative"}})
		return
	}
	if req.MaxDiscount < 0 {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "max_discount", Message: "Maximum discount cannot be negative"}})
		return
	}
	if req.UsageLimit < 0 {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "usage_limit", Message: "Usage limit cannot be negative"}})
		return
	}

	expiry, err := parseCouponDate(req.Expiry)
	if err != nil {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "expiry", Message: "Invalid expiry date format"}})
		return
	}

	validFrom := time.Now()
	if req.ValidFrom != "" {
		validFrom, err = parseCouponDate(req.ValidFrom)
		if err != nil {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "valid_from", Message: "Invalid valid_from date format"}})
			return
		}
	}

	if !expiry.After(validFrom) {
		utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "expiry", Message: "Expiry must be after the start date"}})
		return
	}

	var existing models.Coupon
	if err := config.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.LogError("Coupon code already exists: %s", code)
		utils.Conflict(c, "Coupon code already exists", nil)
		return
	}

	coupon := models.Coupon{
		Code:          code,
		Type:          couponType,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     validFrom,
		Expiry:        expiry,
		UsageLimit:    req.UsageLimit,
		Active:        true,
	}
	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.LogError("Failed to create coupon: %v", err)
		utils.InternalServerError(c, "Failed to create coupon", nil)
		return
	}

	utils.LogInfo("Created coupon %s with ID: %d", coupon.Code, coupon.ID)
	utils.Created(c, "Coupon created successfully", coupon)
}

// UpdateCoupon updates coupon fields
func UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	var req struct {
		Value         *float64 `json:"value"`
		MinOrderValue *float64 `json:"min_order_value"`
		MaxDiscount   *float64 `json:"max_discount"`
		Expiry        *string  `json:"expiry"`
		UsageLimit    *int     `json:"usage_limit"`
		Active        *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Value != nil {
		if err := utils.ValidateCouponValue(coupon.Type, *req.Value); err != nil {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "value", Message: err.Error()}})
			return
		}
		updates["value"] = *req.Value
	}
	if req.MinOrderValue != nil {
		if *req.MinOrderValue < 0 {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "min_order_value", Message: "Minimum order value cannot be negative"}})
			return
		}
		updates["min_order_value"] = *req.MinOrderValue
	}
	if req.MaxDiscount != nil {
		if *req.MaxDiscount < 0 {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "max_discount", Message: "Maximum discount cannot be negative"}})
			return
		}
		updates["max_discount"] = *req.MaxDiscount
	}
	if req.Expiry != nil {
		expiry, err := parseCouponDate(*req.Expiry)
		if err != nil {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "expiry", Message: "Invalid expiry date format"}})
			return
		}
		updates["expiry"] = expiry
	}
	if req.UsageLimit != nil {
		if *req.UsageLimit < 0 {
			utils.ValidationFailed(c, "Validation failed", []utils.FieldError{{Field: "usage_limit", Message: "Usage limit cannot be negative"}})
			return
		}
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&coupon).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update coupon ID: %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to update coupon", nil)
		return
	}

	utils.LogInfo("Updated coupon ID: %d", coupon.ID)
	utils.Success(c, "Coupon updated successfully", coupon)
}

// DeleteCoupon soft-deletes a coupon
func DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var coupon models.Coupon
	if err := config.DB.First(&coupon, id).Error; err != nil {
		utils.NotFound(c, "Coupon not found")
		return
	}

	if err := config.DB.Delete(&coupon).Error; err != nil {
		utils.LogError("Failed to delete coupon ID: %d: %v", coupon.ID, err)
		utils.InternalServerError(c, "Failed to delete coupon", nil)
		return
	}

	utils.LogInfo("Deleted coupon ID: %d", coupon.ID)
	utils.Success(c, "Coupon deleted successfully", nil)
}

// ListCoupons lists all coupons for the admin panel
func ListCoupons(c *gin.Context) {
	utils.LogInfo("ListCoupons called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	pagination.SetTotal(total)

	var coupons []models.Coupon
	if err := config.DB.Order("created_at desc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&coupons).Error; err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}

	now := time.Now()
	items := make([]gin.H, 0, len(coupons))
	for _, coupon := range coupons {
		status := "active"
		switch {
		case !coupon.Active:
			status = "disabled"
		case now.After(coupon.Expiry):
			status = "expired"
		case coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit:
			status = "exhausted"
		case now.Before(coupon.ValidFrom):
			status = "scheduled"
		}
		items = append(items, gin.H{
			"id":              coupon.ID,
			"code":            coupon.Code,
			"type":            coupon.Type,
			"value":           coupon.Value,
			"min_order_value": coupon.MinOrderValue,
			"max_discount":    coupon.MaxDiscount,
			"valid_from":      coupon.ValidFrom,
			"expiry":          coupon.Expiry,
			"usage_limit":     coupon.UsageLimit,
			"used_count":      coupon.UsedCount,
			"status":          status,
		})
	}

	utils.SuccessWithPagination(c, "Coupons retrieved successfully", items, total, pagination.Page, pagination.Limit)
}
