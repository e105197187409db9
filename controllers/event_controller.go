package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type CreateEventInput struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	StartDatetime time.Time  `json:"start_datetime" binding:"required"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      string     `json:"location"`
}

type UpdateEventInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      string     `json:"location"`
}

// GetEvents returns all calendar events belonging to the user
func GetEvents(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var events []models.Event
	if err := database.DB.Where("user_id = ?", userID).Order("start_datetime ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

// GetUpcomingEvents returns the next events starting from now
func GetUpcomingEvents(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	var events []models.Event
	if err := database.DB.Where("user_id = ? AND start_datetime >= ?", userID, time.Now()).
		Order("start_datetime ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

// CreateEvent creates a calendar event for the user
func CreateEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	event := models.Event{
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		StartDatetime: input.StartDatetime,
		EndDatetime:   input.EndDatetime,
		Location:      input.Location,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": event})
}

// UpdateEvent updates one of the user's events
func UpdateEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.StartDatetime != nil {
		updates["start_datetime"] = input.StartDatetime
	}
	if input.EndDatetime != nil {
		updates["end_datetime"] = input.EndDatetime
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}

	result := database.DB.Model(&models.Event{}).
		Where("id = ? AND user_id = ?", eventID, userID).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteEvent removes one of the user's events
func DeleteEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
