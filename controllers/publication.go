package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"

	"github.com/gin-gonic/gin"
)

// GetPublications returns list of publications
func GetPublications(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var publications []models.Publication
	query := config.DB.Preload("User").Where("delete_at IS NULL")

	if roleID.(int) == 1 { // scientists see their own
		query = query.Where("user_id = ?", userID)
	}

	if year := c.Query("year"); year != "" {
		query = query.Where("YEAR(publication_date) = ?", year)
	}

	if err := query.Order("publication_date DESC").Find(&publications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publications": publications,
		"total":        len(publications),
	})
}

// GetPublication returns single publication by ID
func GetPublication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var publication models.Publication
	query := config.DB.Preload("User").Where("publication_id = ? AND delete_at IS NULL", id)
	if roleID.(int) == 1 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&publication).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publication": publication,
	})
}

// CreatePublication records a new publication
func CreatePublication(c *gin.Context) {
	type CreatePublicationRequest struct {
		Title           string     `json:"title" binding:"required"`
		Journal         string     `json:"journal" binding:"required"`
		Doi             *string    `json:"doi"`
		PublicationDate *time.Time `json:"publication_date"`
	}

	var req CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	now := time.Now()
	publication := models.Publication{
		UserID:          userID.(int),
		Title:           req.Title,
		Journal:         req.Journal,
		Doi:             req.Doi,
		PublicationDate: req.PublicationDate,
		CreateAt:        &now,
		UpdateAt:        &now,
	}

	if err := config.DB.Create(&publication).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publication"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Publication created successfully",
		"publication": publication,
	})
}

// UpdatePublication updates an owned publication
func UpdatePublication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type UpdatePublicationRequest struct {
		Title           *string    `json:"title"`
		Journal         *string    `json:"journal"`
		Doi             *string    `json:"doi"`
		PublicationDate *time.Time `json:"publication_date"`
	}

	var req UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var publication models.Publication
	if err := config.DB.Where("publication_id = ? AND user_id = ? AND delete_at IS NULL", id, userID).
		First(&publication).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Journal != nil {
		updates["journal"] = *req.Journal
	}
	if req.Doi != nil {
		updates["doi"] = *req.Doi
	}
	if req.PublicationDate != nil {
		updates["publication_date"] = *req.PublicationDate
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&publication).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update publication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Publication updated successfully",
		"publication": publication,
	})
}

// DeletePublication soft deletes an owned publication
func DeletePublication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var publication models.Publication
	if err := config.DB.Where("publication_id = ? AND user_id = ? AND delete_at IS NULL", id, userID).
		First(&publication).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	now := time.Now()
	publication.DeleteAt = &now

	if err := config.DB.Save(&publication).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete publication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Publication deleted successfully"})
}
