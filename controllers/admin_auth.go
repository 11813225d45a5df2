package controllers

import (
	"strings"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// AdminLogin authenticates an admin user and returns a JWT
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ? AND is_admin = ?", strings.ToLower(strings.TrimSpace(req.Email)), true).First(&user).Error; err != nil {
		utils.LogError("Admin login failed, unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Admin login failed, wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for admin ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())

	utils.LogInfo("Admin %d logged in successfully", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// CreateSampleAdmin seeds an admin account on first startup
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("Admin@123")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:   "admin",
		Email:      "admin@stylenest.local",
		Password:   hash,
		FirstName:  "Store",
		LastName:   "Admin",
		IsAdmin:    true,
		IsVerified: true,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Created sample admin account: %s", admin.Email)
	return nil
}
