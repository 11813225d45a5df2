package controllers

import (
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// AddToWishlist saves a product for later
func AddToWishlist(c *gin.Context) {
	utils.LogInfo("AddToWishlist called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if _, appErr := utils.GetProductForSale(nil, req.ProductID); appErr != nil {
		utils.RespondAppError(c, appErr)
		return
	}

	var existing models.Wishlist
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Product is already in your wishlist", nil)
		return
	}

	item := models.Wishlist{UserID: user.ID, ProductID: req.ProductID}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.LogError("Failed to add to wishlist for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add to wishlist", nil)
		return
	}

	utils.LogInfo("Added product ID: %d to wishlist for user ID: %d", req.ProductID, user.ID)
	utils.Created(c, "Added to wishlist", gin.H{"product_id": req.ProductID})
}

// GetWishlist lists the user's saved products
func GetWishlist(c *gin.Context) {
	utils.LogInfo("GetWishlist called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var items []models.Wishlist
	if err := config.DB.Preload("Product").Where("user_id = ?", user.ID).Order("created_at desc").Find(&items).Error; err != nil {
		utils.LogError("Failed to fetch wishlist for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch wishlist", nil)
		return
	}

	views := make([]interface{}, 0, len(items))
	for i := range items {
		views = append(views, projectProduct(&items[i].Product, ProjectionList))
	}

	utils.Success(c, "Wishlist retrieved successfully", views)
}

// RemoveFromWishlist drops one product from the wishlist
func RemoveFromWishlist(c *gin.Context) {
	utils.LogInfo("RemoveFromWishlist called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	result := config.DB.Where("user_id = ? AND product_id = ?", user.ID, id).Delete(&models.Wishlist{})
	if result.Error != nil {
		utils.LogError("Failed to remove from wishlist for user ID: %d: %v", user.ID, result.Error)
		utils.InternalServerError(c, "Failed to remove from wishlist", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Product not in wishlist")
		return
	}

	utils.LogInfo("Removed product ID: %d from wishlist for user ID: %d", id, user.ID)
	utils.Success(c, "Removed from wishlist", nil)
}
