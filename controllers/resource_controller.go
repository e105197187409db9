package controllers

import (
	"net/http"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type ResourceInput struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// GetResources returns the resource directory, optionally filtered by type
func GetResources(c *gin.Context) {
	query := database.DB
	if resourceType := c.Query("type"); resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}

	var resources []models.Resource
	if err := query.Find(&resources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resources})
}

// GetResource returns a single resource
func GetResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var resource models.Resource
	if err := database.DB.First(&resource, resourceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resource})
}

// CreateResource adds a resource to the directory
func CreateResource(c *gin.Context) {
	var input ResourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	resource := models.Resource{
		Title:       input.Title,
		URL:         input.URL,
		Type:        input.Type,
		Description: input.Description,
	}

	if err := database.DB.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create resource"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resource})
}

// UpdateResource replaces a resource's fields
func UpdateResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ResourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result := database.DB.Model(&models.Resource{}).
		Where("id = ?", resourceID).
		Updates(map[string]interface{}{
			"title":       input.Title,
			"url":         input.URL,
			"type":        input.Type,
			"description": input.Description,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update resource"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteResource removes a resource from the directory
func DeleteResource(c *gin.Context) {
	resourceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Resource{}, resourceID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete resource"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
