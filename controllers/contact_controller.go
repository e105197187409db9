package controllers

import (
	"net/http"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type EmergencyContactInput struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// GetEmergencyContacts returns the emergency contact directory
func GetEmergencyContacts(c *gin.Context) {
	var contacts []models.EmergencyContact
	if err := database.DB.Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": contacts})
}

// GetEmergencyContact returns a single contact
func GetEmergencyContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var contact models.EmergencyContact
	if err := database.DB.First(&contact, contactID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": contact})
}

// CreateEmergencyContact adds a contact to the directory
func CreateEmergencyContact(c *gin.Context) {
	var input EmergencyContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	contact := models.EmergencyContact{
		Name:        input.Name,
		Phone:       input.Phone,
		Description: input.Description,
		Category:    input.Category,
	}

	if err := database.DB.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": contact})
}

// UpdateEmergencyContact replaces a contact's fields
func UpdateEmergencyContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input EmergencyContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result := database.DB.Model(&models.EmergencyContact{}).
		Where("id = ?", contactID).
		Updates(map[string]interface{}{
			"name":        input.Name,
			"phone":       input.Phone,
			"description": input.Description,
			"category":    input.Category,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update contact"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteEmergencyContact removes a contact from the directory
func DeleteEmergencyContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Delete(&models.EmergencyContact{}, contactID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete contact"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
