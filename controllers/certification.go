package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/services"

	"github.com/gin-gonic/gin"
)

// GetCertificationMatrix returns one row per (scientist, module) with the
// status derived from the latest record. Status is recomputed on every read;
// nothing is stored.
func GetCertificationMatrix(c *gin.Context) {
	var users []models.User
	userQuery := config.DB.Where("delete_at IS NULL AND role_id = ?", 1) // 1 = scientist
	if department := c.Query("department_id"); department != "" {
		userQuery = userQuery.Where("department_id = ?", department)
	}
	if err := userQuery.Order("user_lname").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scientists"})
		return
	}

	modules, err := services.GetModules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certification modules"})
		return
	}

	if core := c.Query("core_only"); core == "true" {
		filtered := make([]models.CertificationModule, 0, len(modules))
		for _, module := range modules {
			if module.IsCore {
				filtered = append(filtered, module)
			}
		}
		modules = filtered
	}

	var records []models.CertificationRecord
	if err := config.DB.Where("delete_at IS NULL").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certification records"})
		return
	}

	rows := services.BuildMatrixRows(users, modules, records, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}

// GetExpiringCertifications returns the matrix rows currently in the
// expiring or expired state (admin report)
func GetExpiringCertifications(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("delete_at IS NULL AND role_id = ?", 1).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scientists"})
		return
	}

	modules, err := services.GetModules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certification modules"})
		return
	}

	var records []models.CertificationRecord
	if err := config.DB.Where("delete_at IS NULL").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certification records"})
		return
	}

	all := services.BuildMatrixRows(users, modules, records, time.Now())
	flagged := make([]services.MatrixRow, 0)
	for _, row := range all {
		if row.Status == services.CertStatusExpiring || row.Status == services.CertStatusExpired {
			flagged = append(flagged, row)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  flagged,
		"total": len(flagged),
	})
}

// CreateCertificationRecord confirms a certificate for a scientist (admin).
// Renewal simply creates a new record; the matrix picks the latest end date.
func CreateCertificationRecord(c *gin.Context) {
	type CreateRecordRequest struct {
		UserID     int        `json:"user_id" binding:"required"`
		ModuleID   int        `json:"module_id"`
		ModuleCode string     `json:"module_code"`
		StartDate  *time.Time `json:"start_date"`
		EndDate    *time.Time `json:"end_date"`
		FileID     *int       `json:"file_id"`
	}

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := c.Get("userID")

	var scientist models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).First(&scientist).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scientist"})
		return
	}

	// The module may be named by id or by catalog code (e.g. "GCP").
	if req.ModuleID == 0 {
		if req.ModuleCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "module_id or module_code is required"})
			return
		}
		moduleID, err := services.GetModuleIDByCode(req.ModuleCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.ModuleID = moduleID
	}

	var module models.CertificationModule
	if err := config.DB.Where("module_id = ? AND delete_at IS NULL", req.ModuleID).First(&module).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certification module"})
		return
	}

	// Derive the end date from the module cadence when not supplied
	endDate := req.EndDate
	if endDate == nil && req.StartDate != nil {
		endDate = services.RenewalEndDate(module, *req.StartDate)
	}

	now := time.Now()
	confirmedBy := adminID.(int)
	record := models.CertificationRecord{
		UserID:      req.UserID,
		ModuleID:    req.ModuleID,
		StartDate:   req.StartDate,
		EndDate:     endDate,
		FileID:      req.FileID,
		ConfirmedBy: &confirmedBy,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create certification record"})
		return
	}

	status := services.EvaluateStatus(record.EndDate, now)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Certification record created successfully",
		"record":  record,
		"status":  status,
	})
}

// GetCertificationModules returns certification module reference data
func GetCertificationModules(c *gin.Context) {
	modules, err := services.GetModules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certification modules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"modules": modules,
	})
}

// CreateCertificationModule creates a new module (admin)
func CreateCertificationModule(c *gin.Context) {
	type CreateModuleRequest struct {
		ModuleName       string `json:"module_name" binding:"required"`
		Code             string `json:"code" binding:"required"`
		IsCore           bool   `json:"is_core"`
		ExpirationMonths int    `json:"expiration_months"`
		ModuleOrder      int    `json:"module_order"`
	}

	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	module := models.CertificationModule{
		ModuleName:       req.ModuleName,
		Code:             req.Code,
		IsCore:           req.IsCore,
		ExpirationMonths: req.ExpirationMonths,
		ModuleOrder:      req.ModuleOrder,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	if err := config.DB.Create(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create certification module"})
		return
	}

	services.ClearModuleCache()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Certification module created successfully",
		"module":  module,
	})
}

// UpdateCertificationModule updates module reference data (admin)
func UpdateCertificationModule(c *gin.Context) {
	id := c.Param("id")

	type UpdateModuleRequest struct {
		ModuleName       *string `json:"module_name"`
		Code             *string `json:"code"`
		IsCore           *bool   `json:"is_core"`
		ExpirationMonths *int    `json:"expiration_months"`
		ModuleOrder      *int    `json:"module_order"`
	}

	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var module models.CertificationModule
	if err := config.DB.Where("module_id = ? AND delete_at IS NULL", id).First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification module not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.ModuleName != nil {
		updates["module_name"] = *req.ModuleName
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.IsCore != nil {
		updates["is_core"] = *req.IsCore
	}
	if req.ExpirationMonths != nil {
		updates["expiration_months"] = *req.ExpirationMonths
	}
	if req.ModuleOrder != nil {
		updates["module_order"] = *req.ModuleOrder
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&module).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update certification module"})
		return
	}

	services.ClearModuleCache()

	c.JSON(http.StatusOK, gin.H{
		"message": "Certification module updated successfully",
		"module":  module,
	})
}

// DeleteCertificationModule soft deletes a module (admin)
func DeleteCertificationModule(c *gin.Context) {
	id := c.Param("id")

	var module models.CertificationModule
	if err := config.DB.Where("module_id = ? AND delete_at IS NULL", id).First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification module not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&module).Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete certification module"})
		return
	}

	services.ClearModuleCache()

	c.JSON(http.StatusOK, gin.H{"message": "Certification module deleted successfully"})
}
