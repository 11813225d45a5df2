package routes

import (
	"github.com/Adithyan-707/StyleNest/controllers"
	"github.com/Adithyan-707/StyleNest/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes wires the authenticated shopper surface
func RegisterUserRoutes(v1 *gin.RouterGroup) {
	user := v1.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.POST("/logout", controllers.LogoutUser)

		cart := user.Group("/cart")
		{
			cart.POST("/add", controllers.AddToCart)
			cart.GET("", controllers.GetCart)
			cart.PUT("/update", controllers.UpdateCart)
			cart.DELETE("/remove", controllers.RemoveFromCart)
			cart.DELETE("/clear", controllers.ClearCart)
			cart.POST("/merge", controllers.MergeCart)
		}

		wishlist := user.Group("/wishlist")
		{
			wishlist.POST("/add", controllers.AddToWishlist)
			wishlist.GET("", controllers.GetWishlist)
			wishlist.DELETE("/:id", controllers.RemoveFromWishlist)
		}

		addresses := user.Group("/addresses")
		{
			addresses.POST("", controllers.AddAddress)
			addresses.GET("", controllers.ListAddresses)
			addresses.PUT("/:id", controllers.UpdateAddress)
			addresses.DELETE("/:id", controllers.DeleteAddress)
		}

		user.GET("/checkout", controllers.GetCheckoutSummary)
		user.POST("/checkout", controllers.PlaceOrder)

		orders := user.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrderDetails)
			orders.POST("/:id/cancel", controllers.CancelOrder)
			orders.GET("/:id/invoice", controllers.DownloadInvoice)
		}

		payment := user.Group("/payment")
		{
			payment.POST("/initiate", controllers.InitiatePayment)
			payment.POST("/verify", controllers.VerifyPayment)
		}

		user.POST("/products/:id/review", controllers.AddReview)
	}
}
