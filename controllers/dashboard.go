package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns dashboard statistics
func GetDashboardStats(c *gin.Context) {
	userIDVal, userExists := c.Get("userID")
	roleIDVal, roleExists := c.Get("roleID")
	if !userExists || !roleExists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication context missing",
		})
		return
	}

	userID, okUser := userIDVal.(int)
	roleID, okRole := roleIDVal.(int)
	if !okUser || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "invalid user or role id",
		})
		return
	}

	var stats map[string]interface{}
	if roleID == 3 { // Admin dashboard
		stats = getAdminDashboard()
	} else { // Scientist dashboard
		stats = getScientistDashboard(userID)
	}

	if stats == nil {
		stats = make(map[string]interface{})
	}

	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func applicationCountsByStatus() map[string]int64 {
	counts := make(map[string]int64)
	statuses := []string{
		models.StatusDraft,
		models.StatusSubmitted,
		models.StatusUnderReview,
		models.StatusRevisionsRequested,
		models.StatusApproved,
		models.StatusRejected,
	}
	for _, status := range statuses {
		var count int64
		config.DB.Model(&models.IrbApplication{}).
			Where("workflow_status = ? AND delete_at IS NULL", status).
			Count(&count)
		counts[status] = count
	}
	return counts
}

func getAdminDashboard() map[string]interface{} {
	stats := make(map[string]interface{})

	stats["applications_by_status"] = applicationCountsByStatus()

	var scientists int64
	config.DB.Model(&models.User{}).Where("role_id = ? AND delete_at IS NULL", 1).Count(&scientists)
	stats["scientists"] = scientists

	var activities int64
	config.DB.Model(&models.ResearchActivity{}).Where("status = 'active' AND delete_at IS NULL").Count(&activities)
	stats["active_research_activities"] = activities

	// Certification summary is derived, never stored
	var users []models.User
	config.DB.Where("delete_at IS NULL AND role_id = ?", 1).Find(&users)
	modules, err := services.GetModules()
	if err == nil {
		var records []models.CertificationRecord
		config.DB.Where("delete_at IS NULL").Find(&records)

		counts := map[services.CertificationStatus]int{}
		for _, row := range services.BuildMatrixRows(users, modules, records, time.Now()) {
			counts[row.Status]++
		}
		stats["certifications"] = gin.H{
			"valid":    counts[services.CertStatusValid],
			"expiring": counts[services.CertStatusExpiring],
			"expired":  counts[services.CertStatusExpired],
			"never":    counts[services.CertStatusNever],
		}
	}

	return stats
}

func getScientistDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	counts := make(map[string]int64)
	rows := []struct {
		WorkflowStatus string
		Total          int64
	}{}
	config.DB.Model(&models.IrbApplication{}).
		Select("workflow_status, COUNT(*) as total").
		Where("principal_investigator_id = ? AND delete_at IS NULL", userID).
		Group("workflow_status").
		Scan(&rows)
	for _, row := range rows {
		counts[row.WorkflowStatus] = row.Total
	}
	stats["applications_by_status"] = counts

	var publications int64
	config.DB.Model(&models.Publication{}).
		Where("user_id = ? AND delete_at IS NULL", userID).Count(&publications)
	stats["publications"] = publications

	var contracts int64
	config.DB.Model(&models.Contract{}).
		Where("user_id = ? AND status = 'active' AND delete_at IS NULL", userID).Count(&contracts)
	stats["active_contracts"] = contracts

	// Own certification rows with derived status
	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err == nil {
		modules, err := services.GetModules()
		if err == nil {
			var records []models.CertificationRecord
			config.DB.Where("user_id = ? AND delete_at IS NULL", userID).Find(&records)
			stats["certifications"] = services.BuildMatrixRows([]models.User{user}, modules, records, time.Now())
		}
	}

	return stats
}
