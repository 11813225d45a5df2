package controllers

import (
	"strconv"

	"github.com/Adithyan-707/StyleNest/config"
	"github.com/Adithyan-707/StyleNest/models"
	"github.com/Adithyan-707/StyleNest/utils"
	"github.com/gin-gonic/gin"
)

// AddAddress creates a shipping address for the user
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	address.ID = 0
	address.UserID = user.ID

	if fieldErrs := utils.ValidateAddress(&address); len(fieldErrs) > 0 {
		utils.ValidationFailed(c, "Validation failed", fieldErrs)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var count int64
	tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count)
	if count == 0 {
		address.IsDefault = true
	} else if address.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).UpdateColumn("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
	}

	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create address", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to save address", nil)
		return
	}

	utils.LogInfo("Created address ID: %d for user ID: %d", address.ID, user.ID)
	utils.Created(c, "Address added successfully", address)
}

// ListAddresses lists the user's addresses
func ListAddresses(c *gin.Context) {
	utils.LogInfo("ListAddresses called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default desc, id").Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", nil)
		return
	}

	utils.Success(c, "Addresses retrieved successfully", addresses)
}

// UpdateAddress updates one of the user's addresses
func UpdateAddress(c *gin.Context) {
	utils.LogInfo("UpdateAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&address).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return
	}

	var updated models.Address
	if err := c.ShouldBindJSON(&updated); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	updated.ID = address.ID
	updated.UserID = user.ID

	if fieldErrs := utils.ValidateAddress(&updated); len(fieldErrs) > 0 {
		utils.ValidationFailed(c, "Validation failed", fieldErrs)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if updated.IsDefault && !address.IsDefault {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).UpdateColumn("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update default address", nil)
			return
		}
	}

	if err := tx.Save(&updated).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update address ID: %d: %v", address.ID, err)
		utils.InternalServerError(c, "Failed to update address", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.InternalServerError(c, "Failed to save address", nil)
		return
	}

	utils.LogInfo("Updated address ID: %d for user ID: %d", address.ID, user.ID)
	utils.Success(c, "Address updated successfully", updated)
}

// DeleteAddress removes one of the user's addresses
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		utils.LogError("Failed to delete address ID: %d: %v", id, result.Error)
		utils.InternalServerError(c, "Failed to delete address", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}

	utils.LogInfo("Deleted address ID: %d for user ID: %d", id, user.ID)
	utils.Success(c, "Address deleted successfully", nil)
}
