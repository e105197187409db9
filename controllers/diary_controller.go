package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type LogEmotionInput struct {
	Emotion   string `json:"emotion" binding:"required"`
	Intensity int    `json:"intensity" binding:"required,min=1,max=10"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
}

// LogEmotion records an emotion diary entry for the user
func LogEmotion(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input LogEmotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	entry := models.DiaryEntry{
		UserID:    userID,
		Emotion:   input.Emotion,
		Intensity: input.Intensity,
		Content:   input.Content,
		Tags:      input.Tags,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to log emotion"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": entry})
}

// GetEmotionalHistory returns the user's diary entries for the last N days
func GetEmotionalHistory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)

	var entries []models.DiaryEntry
	if err := database.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch diary entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries, "count": len(entries)})
}
