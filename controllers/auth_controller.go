package controllers

import (
	"strings"
	"time"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser creates a new user account
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var fieldErrs []utils.FieldError
	if ok, msg := utils.ValidateUsername(req.Username); !ok {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "username", Message: msg})
	}
	if ok, msg := utils.ValidateEmail(req.Email); !ok {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "email", Message: msg})
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "password", Message: msg})
	}
	if ok, msg := utils.ValidatePhone(req.Phone); !ok {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "phone", Message: msg})
	}
	if len(fieldErrs) > 0 {
		utils.LogError("Registration validation failed for email: %s", req.Email)
		utils.ValidationFailed(c, "Validation failed", fieldErrs)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Duplicate registration attempt for email: %s", req.Email)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user for email %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	utils.LogInfo("Registered new user ID: %d, email: %s", user.ID, user.Email)
	utils.Created(c, "Registration successful", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// LoginUser authenticates a user and returns a JWT
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.LogError("Login failed, unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Your account has been blocked")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	config.DB.Model(&user).UpdateColumn("last_login_at", time.Now())

	utils.LogInfo("User %d logged in successfully", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// LogoutUser blacklists the active token
func LogoutUser(c *gin.Context) {
	utils.LogInfo("LogoutUser called")

	tokenVal, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "No active session")
		return
	}
	tokenString, _ := tokenVal.(string)

	if err := utils.BlacklistToken(tokenString, time.Now().Add(24*time.Hour)); err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to logout", nil)
		return
	}

	utils.LogInfo("Token blacklisted successfully")
	utils.Success(c, "Logout successful", nil)
}
