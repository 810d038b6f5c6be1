package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"

	"github.com/gin-gonic/gin"
)

// GetResearchActivities returns list of research activities
func GetResearchActivities(c *gin.Context) {
	var activities []models.ResearchActivity
	query := config.DB.Preload("Lead").Where("delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if lead := c.Query("lead_user_id"); lead != "" {
		query = query.Where("lead_user_id = ?", lead)
	}

	if err := query.Order("create_at DESC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch research activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"total":      len(activities),
	})
}

// GetResearchActivity returns single research activity by ID
func GetResearchActivity(c *gin.Context) {
	id := c.Param("id")

	var activity models.ResearchActivity
	if err := config.DB.Preload("Lead").
		Where("activity_id = ? AND delete_at IS NULL", id).
		First(&activity).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research activity not found"})
		return
	}

	// Applications linked to this activity
	var applications []models.IrbApplication
	config.DB.Where("research_activity_id = ? AND delete_at IS NULL", activity.ActivityID).
		Find(&applications)

	c.JSON(http.StatusOK, gin.H{
		"activity":     activity,
		"applications": applications,
	})
}

// CreateResearchActivity creates a new research activity
func CreateResearchActivity(c *gin.Context) {
	type CreateActivityRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	now := time.Now()
	activity := models.ResearchActivity{
		Title:       req.Title,
		Description: req.Description,
		LeadUserID:  userID.(int),
		Status:      "active",
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create research activity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Research activity created successfully",
		"activity": activity,
	})
}

// UpdateResearchActivity updates a research activity (lead or admin)
func UpdateResearchActivity(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	type UpdateActivityRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.ResearchActivity
	if err := config.DB.Where("activity_id = ? AND delete_at IS NULL", id).First(&activity).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research activity not found"})
		return
	}

	if roleID.(int) != 3 && activity.LeadUserID != userID.(int) { // 3 = admin
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&activity).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update research activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Research activity updated successfully",
		"activity": activity,
	})
}

// DeleteResearchActivity soft deletes a research activity (lead or admin)
func DeleteResearchActivity(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var activity models.ResearchActivity
	if err := config.DB.Where("activity_id = ? AND delete_at IS NULL", id).First(&activity).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Research activity not found"})
		return
	}

	if roleID.(int) != 3 && activity.LeadUserID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// Block deletion while applications still reference the activity
	var linked int64
	config.DB.Model(&models.IrbApplication{}).
		Where("research_activity_id = ? AND delete_at IS NULL", activity.ActivityID).
		Count(&linked)
	if linked > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Activity has linked IRB applications"})
		return
	}

	now := time.Now()
	activity.DeleteAt = &now

	if err := config.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete research activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Research activity deleted successfully"})
}
