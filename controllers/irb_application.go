package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetIrbApplications returns list of IRB applications. Non-admin users only
// see applications where they are the principal investigator.
func GetIrbApplications(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var applications []models.IrbApplication
	query := config.DB.Preload("PrincipalInvestigator").Preload("ResearchActivity").
		Where("irb_applications.delete_at IS NULL")

	if roleID.(int) == 1 { // 1 = scientist
		query = query.Where("principal_investigator_id = ?", userID)
	}

	// Apply filters from query params
	if status := c.Query("status"); status != "" {
		query = query.Where("workflow_status = ?", status)
	}

	if activity := c.Query("research_activity_id"); activity != "" {
		query = query.Where("research_activity_id = ?", activity)
	}

	if err := query.Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetIrbApplication returns single IRB application by ID
func GetIrbApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var application models.IrbApplication
	query := config.DB.Preload("PrincipalInvestigator").Preload("ResearchActivity").
		Preload("Documents").
		Where("application_id = ? AND irb_applications.delete_at IS NULL", id)

	if roleID.(int) == 1 {
		query = query.Where("principal_investigator_id = ?", userID)
	}

	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var history []models.IrbStatusHistory
	config.DB.Where("application_id = ?", application.ApplicationID).
		Order("created_at ASC").Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"application":    application,
		"status_history": history,
	})
}

// CreateIrbApplication creates a new draft application
func CreateIrbApplication(c *gin.Context) {
	type CreateApplicationRequest struct {
		Title              string `json:"title" binding:"required"`
		Description        string `json:"description"`
		ResearchActivityID *int   `json:"research_activity_id"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	if req.ResearchActivityID != nil {
		var activity models.ResearchActivity
		if err := config.DB.Where("activity_id = ? AND delete_at IS NULL", *req.ResearchActivityID).
			First(&activity).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid research activity"})
			return
		}
	}

	now := time.Now()
	application := models.IrbApplication{
		Title:                   req.Title,
		Description:             req.Description,
		WorkflowStatus:          models.StatusDraft,
		ResearchActivityID:      req.ResearchActivityID,
		PrincipalInvestigatorID: userID.(int),
		CreateAt:                &now,
		UpdateAt:                &now,
	}

	// Number and insert under one transaction so the day sequence advances
	// from the highest issued number, soft-deleted drafts included.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		last, err := lastApplicationNumber(tx, now)
		if err != nil {
			return err
		}
		application.ApplicationNumber = services.NextApplicationNumber(last, now)
		return tx.Create(&application).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	config.DB.Preload("PrincipalInvestigator").Preload("ResearchActivity").First(&application)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// UpdateIrbApplication partially updates an editable application. This is the
// writable application resource: a JSON body of changed fields only.
func UpdateIrbApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type UpdateApplicationRequest struct {
		Title              *string `json:"title"`
		Description        *string `json:"description"`
		StudyDesign        *string `json:"study_design"`
		RiskLevel          *string `json:"risk_level"`
		ProtocolType       *string `json:"protocol_type"`
		ResearchActivityID *int    `json:"research_activity_id"`
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.IrbApplication
	if err := config.DB.Where("application_id = ? AND principal_investigator_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if !application.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application can only be edited in draft or revisions_requested status"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StudyDesign != nil {
		updates["study_design"] = *req.StudyDesign
	}
	if req.RiskLevel != nil {
		updates["risk_level"] = *req.RiskLevel
	}
	if req.ProtocolType != nil {
		updates["protocol_type"] = *req.ProtocolType
	}
	if req.ResearchActivityID != nil {
		updates["research_activity_id"] = *req.ResearchActivityID
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&application).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": application,
	})
}

// DeleteIrbApplication soft deletes a draft application
func DeleteIrbApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var application models.IrbApplication
	if err := config.DB.Where("application_id = ? AND principal_investigator_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if application.WorkflowStatus != models.StatusDraft {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only draft applications can be deleted"})
		return
	}

	now := time.Now()
	application.DeleteAt = &now

	if err := config.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// applyDecision is shared by the committee/admin workflow actions.
func applyDecision(c *gin.Context, newStatus string, requireComment bool) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type DecisionRequest struct {
		Comment string `json:"comment"`
	}

	var req DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if requireComment && req.Comment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment is required"})
		return
	}

	appID := 0
	if _, err := fmt.Sscanf(id, "%d", &appID); err != nil || appID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}

	application, err := services.ApplyTransition(config.DB, appID, newStatus, userID.(int), comment)
	if err != nil {
		if errors.Is(err, services.ErrStatusConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Application moved to %s", newStatus),
		"application": application,
	})
}

// StartIrbReview moves a submitted application under review (committee/admin)
func StartIrbReview(c *gin.Context) {
	applyDecision(c, models.StatusUnderReview, false)
}

// ApproveIrbApplication approves an application under review
func ApproveIrbApplication(c *gin.Context) {
	applyDecision(c, models.StatusApproved, false)
}

// RejectIrbApplication rejects an application under review
func RejectIrbApplication(c *gin.Context) {
	applyDecision(c, models.StatusRejected, true)
}

// RequestIrbRevisions sends an application back to the PI for changes
func RequestIrbRevisions(c *gin.Context) {
	applyDecision(c, models.StatusRevisionsRequested, true)
}

// lastApplicationNumber returns the highest application number issued today,
// or "" when today has none. Soft-deleted rows count.
func lastApplicationNumber(tx *gorm.DB, now time.Time) (string, error) {
	var last *string
	err := tx.Model(&models.IrbApplication{}).
		Where("application_number LIKE ?", services.ApplicationNumberPrefix(now)+"%").
		Select("MAX(application_number)").
		Scan(&last).Error
	if err != nil {
		return "", err
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}
