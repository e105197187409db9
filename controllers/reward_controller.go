package controllers

import (
	"net/http"
	"time"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dailyCoins = 3

type SubtractPointsInput struct {
	Points int `json:"points" binding:"required,min=1"`
}

// GetBalance returns the user's point balance
func GetBalance(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var points models.UserPoints
	if err := database.DB.First(&points, "user_id = ?", userID).Error; err != nil {
		// No ledger row yet means a zero balance
		c.JSON(http.StatusOK, gin.H{"success": true, "balance": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": points.Balance})
}

// ClaimDailyCoins grants the daily coins once per calendar day
func ClaimDailyCoins(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	today := time.Now().Truncate(24 * time.Hour)

	var existing models.UserPoints
	err := database.DB.First(&existing, "user_id = ?", userID).Error
	if err == nil && existing.LastRewardDate != nil && !existing.LastRewardDate.Before(today) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Daily coins already claimed", "balance": existing.Balance})
		return
	}

	points := models.UserPoints{
		UserID:         userID,
		Balance:        dailyCoins,
		LastRewardDate: &today,
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":          gorm.Expr("user_points.balance + ?", dailyCoins),
			"last_reward_date": today,
		}),
	}).Create(&points).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to claim daily coins"})
		return
	}

	var updated models.UserPoints
	database.DB.First(&updated, "user_id = ?", userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": updated.Balance})
}

// SubtractPoints spends points if the balance covers them
func SubtractPoints(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input SubtractPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// Conditional update so a concurrent spend cannot drive the balance negative
	result := database.DB.Model(&models.UserPoints{}).
		Where("user_id = ? AND balance >= ?", userID, input.Points).
		Update("balance", gorm.Expr("balance - ?", input.Points))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to subtract points"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Insufficient points"})
		return
	}

	var points models.UserPoints
	database.DB.First(&points, "user_id = ?", userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "new_balance": points.Balance})
}
