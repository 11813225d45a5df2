package routes

import (
	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/controllers"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the middleware chain and the full route tree
func SetupRouter() *gin.Engine {
	router := gin.New()

	store := cookie.NewStore([]byte(config.App.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("stylenest_session", store))

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	v1 := router.Group("/v1")
	{
		// Public storefront and auth
		v1.POST("/register", controllers.RegisterUser)
		v1.POST("/login", controllers.LoginUser)
		v1.GET("/auth/google/login", controllers.GoogleLogin)
		v1.GET("/auth/google/callback", controllers.GoogleCallback)

		v1.GET("/products", controllers.GetProducts)
		v1.GET("/products/:id", controllers.GetProductDetails)
		v1.GET("/products/:id/reviews", controllers.GetProductReviews)
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/categories/:id/products", controllers.ListProductsByCategory)

		v1.POST("/coupons/validate", controllers.ValidateCoupon)
	}

	RegisterUserRoutes(v1)
	RegisterAdminRoutes(v1)

	return router
}
