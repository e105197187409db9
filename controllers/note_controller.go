package controllers

import (
	"net/http"

	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/models"
	"github.com/gin-gonic/gin"
)

type CreateNoteInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
}

type UpdateNoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Pinned  *bool  `json:"pinned"`
}

// GetNotes returns all notes belonging to the user
func GetNotes(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var notes []models.Note
	if err := database.DB.Where("user_id = ?", userID).Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notes})
}

// SearchNotes returns the user's notes matching the query in title or content
func SearchNotes(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "q is required"})
		return
	}

	var notes []models.Note
	if err := database.DB.Where("user_id = ? AND (title ILIKE ? OR content ILIKE ?)",
		userID, "%"+query+"%", "%"+query+"%").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to search notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notes})
}

// CreateNote creates a note for the user
func CreateNote(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	note := models.Note{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
		Color:   input.Color,
		Pinned:  input.Pinned,
	}
	if note.Color == "" {
		note.Color = "#FFFFFF"
	}

	if err := database.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": note})
}

// UpdateNote updates one of the user's notes
func UpdateNote(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Content != "" {
		updates["content"] = input.Content
	}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	if input.Pinned != nil {
		updates["pinned"] = *input.Pinned
	}

	result := database.DB.Model(&models.Note{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update note"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Note not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteNote removes one of the user's notes
func DeleteNote(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete note"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Note not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
