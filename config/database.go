package config

import (
	"fmt"

	"github.com/Adithyan-707/StyleNest/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and runs migrations
func InitDB() {
	if App == nil {
		panic("config not loaded, call LoadConfig before InitDB")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		App.DBHost, App.DBPort, App.DBUser, App.DBPassword, App.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// Auto-migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.BlacklistedToken{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Review{},
		&models.Cart{},
		&models.Wishlist{},
		&models.Coupon{},
		&models.UserCoupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.Payment{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
