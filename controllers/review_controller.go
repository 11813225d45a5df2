package controllers

import (
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// AddReview lets a user rate a product they have purchased
func AddReview(c *gin.Context) {
	utils.LogInfo("AddReview called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	// Only buyers with a delivered order for this product may review it
	var purchased int64
	config.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?", user.ID, product.ID, models.OrderStatusDelivered).
		Count(&purchased)
	if purchased == 0 {
		utils.Forbidden(c, "You can only review products you have purchased")
		return
	}

	var existing models.Review
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "You have already reviewed this product", nil)
		return
	}

	review := models.Review{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create review for product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create review", nil)
		return
	}

	// Recompute the denormalized rating fields on the product row
	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", product.ID).
		Scan(&stats).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update product rating", nil)
		return
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).UpdateColumns(map[string]interface{}{
		"average_rating": utils.RoundMoney(stats.Avg),
		"total_reviews":  stats.Count,
	}).Error; err != nil {
		tx.Rollback()
		utils.InternalServerError(c, "Failed to update product rating", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to save review", nil)
		return
	}

	utils.LogInfo("User %d reviewed product ID: %d with rating %d", user.ID, product.ID, req.Rating)
	utils.Created(c, "Review added successfully", gin.H{
		"id":      review.ID,
		"rating":  review.Rating,
		"comment": review.Comment,
	})
}

// GetProductReviews lists reviews for one product
func GetProductReviews(c *gin.Context) {
	utils.LogInfo("GetProductReviews called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	config.DB.Model(&models.Review{}).Where("product_id = ?", id).Count(&total)
	pagination.SetTotal(total)

	var reviews []models.Review
	if err := config.DB.Preload("User").
		Where("product_id = ?", id).
		Order("created_at desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews for product ID: %d: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch reviews", nil)
		return
	}

	items := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, gin.H{
			"id":         r.ID,
			"username":   r.User.Username,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": r.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Reviews retrieved successfully", items, total, pagination.Page, pagination.Limit)
}
