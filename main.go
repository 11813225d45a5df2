package main

import (
	"log"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/controllers"
	"github.com/Adithyan-707/StyleNest/routes"
	"github.com/Adithyan-707/StyleNest/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	utils.LogInfo("Starting StyleNest server")

	if _, err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	config.InitDB()
	config.InitGoogleOAuth()

	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to ensure admin account: %v", err)
	}
	if err := controllers.CreateDefaultCategory(); err != nil {
		utils.LogError("Failed to ensure default category: %v", err)
	}

	router := routes.SetupRouter()

	utils.LogInfo("Listening on port %s", config.App.Port)
	if err := router.Run(":" + config.App.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
