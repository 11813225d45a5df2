package controllers

import (
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// ListCategories lists unblocked categories for the storefront
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	utils.Success(c, "Categories retrieved successfully", categories)
}

// ListProductsByCategory lists active products in one category
func ListProductsByCategory(c *gin.Context) {
	utils.LogInfo("ListProductsByCategory called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}
	if category.Blocked {
		utils.NotFound(c, "Category not found")
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ? AND blocked = ?", category.ID, true, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for category ID: %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]interface{}, 0, len(products))
	for i := range products {
		views = append(views, projectProduct(&products[i], ProjectionList))
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", views, total, pagination.Page, pagination.Limit)
}

// CreateCategory creates a new category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", req.Name).First(&existing).Error; err == nil {
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.LogInfo("Created category ID: %d", category.ID)
	utils.Created(c, "Category created successfully", category)
}

// BlockCategory toggles a category's blocked state
func BlockCategory(c *gin.Context) {
	utils.LogInfo("BlockCategory called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	if err := config.DB.Model(&category).UpdateColumn("blocked", !category.Blocked).Error; err != nil {
		utils.LogError("Failed to update category ID: %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{
		"id":      category.ID,
		"blocked": !category.Blocked,
	})
}

// CreateDefaultCategory seeds a fallback category on first startup
func CreateDefaultCategory() error {
	var count int64
	if err := config.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	category := models.Category{
		Name:        "Uncategorized",
		Description: "Default category for products without one",
	}
	return config.DB.Create(&category).Error
}
