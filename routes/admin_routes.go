package routes

import (
	"github.com/Adithyan-707/StyleNest/controllers"
	"github.com/Adithyan-707/StyleNest/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes wires the admin panel surface
func RegisterAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	guarded := admin.Group("")
	guarded.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		products := guarded.Group("/products")
		{
			products.GET("", controllers.AdminListProducts)
			products.POST("", controllers.CreateProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		categories := guarded.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id/block", controllers.BlockCategory)
		}

		coupons := guarded.Group("/coupons")
		{
			coupons.GET("", controllers.ListCoupons)
			coupons.POST("", controllers.CreateCoupon)
			coupons.PUT("/:id", controllers.UpdateCoupon)
			coupons.DELETE("/:id", controllers.DeleteCoupon)
		}

		orders := guarded.Group("/orders")
		{
			orders.GET("", controllers.AdminListOrders)
			orders.GET("/:id", controllers.AdminGetOrderDetails)
			orders.PUT("/:id/status", controllers.UpdateOrderStatus)
		}

		reports := guarded.Group("/reports")
		{
			reports.GET("/sales", controllers.GetSalesReport)
			reports.GET("/sales/export", controllers.ExportSalesReport)
		}
	}
}
