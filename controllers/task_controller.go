package controllers

import (
	"net/http"
	"time"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type CreateTaskInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress done"`
}

// GetTasks returns all tasks belonging to the user
func GetTasks(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var tasks []models.Task
	if err := database.DB.Where("user_id = ?", userID).Order("due_date ASC NULLS LAST").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks})
}

// SearchTasks returns the user's tasks matching the query
func SearchTasks(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "q is required"})
		return
	}

	var tasks []models.Task
	if err := database.DB.Where("user_id = ? AND (title ILIKE ? OR description ILIKE ?)",
		userID, "%"+query+"%", "%"+query+"%").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to search tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks})
}

// CreateTask creates a task for the user
func CreateTask(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	task := models.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      "pending",
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}

	if err := database.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": task})
}

// UpdateTask updates one of the user's tasks
func UpdateTask(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateTaskInput
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
	if input.DueDate != nil {
		updates["due_date"] = input.DueDate
	}
	if input.Priority != "" {
		updates["priority"] = input.Priority
	}
	if input.Status != "" {
		updates["status"] = input.Status
	}

	result := database.DB.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update task"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTask removes one of the user's tasks
func DeleteTask(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", taskID, userID).Delete(&models.Task{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete task"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
