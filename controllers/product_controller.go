package controllers

import (
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// ProductProjection selects which typed view of a product a handler
// returns. Each use case gets an explicit struct instead of a
// string-built field list.
type ProductProjection int

const (
	ProjectionList ProductProjection = iota
	ProjectionDetail
	ProjectionAdmin
)

// ProductListView is the storefront listing shape
type ProductListView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	InStock  bool    `json:"in_stock"`
	Rating   float64 `json:"rating"`
}

// ProductDetailView is the storefront product page shape
type ProductDetailView struct {
	ID            uint                    `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Price         float64                 `json:"price"`
	Stock         int                     `json:"stock"`
	ImageURL      string                  `json:"image_url"`
	CategoryID    uint                    `json:"category_id"`
	Variants      []models.ProductVariant `json:"variants"`
	AverageRating float64                 `json:"average_rating"`
	TotalReviews  int                     `json:"total_reviews"`
}

// ProductAdminView includes moderation fields hidden from shoppers
type ProductAdminView struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	CategoryID uint    `json:"category_id"`
	IsActive   bool    `json:"is_active"`
	Blocked    bool    `json:"blocked"`
	IsFeatured bool    `json:"is_featured"`
}

func projectProduct(p *models.Product, projection ProductProjection) interface{} {
	switch projection {
	case ProjectionDetail:
		return ProductDetailView{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Price:         p.Price,
			Stock:         p.Stock,
			ImageURL:      p.ImageURL,
			CategoryID:    p.CategoryID,
			Variants:      p.Variants,
			AverageRating: p.AverageRating,
			TotalReviews:  p.TotalReviews,
		}
	case ProjectionAdmin:
		return ProductAdminView{
			ID:         p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			Price:      p.Price,
			Stock:      p.Stock,
			CategoryID: p.CategoryID,
			IsActive:   p.IsActive,
			Blocked:    p.Blocked,
			IsFeatured: p.IsFeatured,
		}
	default:
		return ProductListView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			InStock:  p.Stock > 0,
			Rating:   p.AverageRating,
		}
	}
}

// GetProducts lists active products for the storefront
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{}).
		Where("is_active = ? AND blocked = ?", true, false)

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Order("created_at desc").Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", nil)
		return
	}

	views := make([]interface{}, 0, len(products))
	for i := range products {
		views = append(views, projectProduct(&products[i], ProjectionList))
	}

	utils.LogInfo("Fetched %d products", len(products))
	utils.SuccessWithPagination(c, "Products retrieved successfully", views, total, pagination.Page, pagination.Limit)
}

// GetProductDetails returns the product page view with variants
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Variants", "is_active = ?", true).First(&product, id).Error; err != nil {
		utils.LogError("Product not found: %d", id)
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.IsActive || product.Blocked {
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", projectProduct(&product, ProjectionDetail))
}
