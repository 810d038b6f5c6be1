package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/utils"

	"github.com/gin-gonic/gin"
)

// GetScientists returns list of scientists
func GetScientists(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Role").Preload("Department").
		Where("delete_at IS NULL")

	if department := c.Query("department_id"); department != "" {
		query = query.Where("department_id = ?", department)
	}

	if role := c.Query("role_id"); role != "" {
		query = query.Where("role_id = ?", role)
	}

	if err := query.Order("user_lname").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scientists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scientists": users,
		"total":      len(users),
	})
}

// GetScientist returns single scientist by ID
func GetScientist(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Preload("Role").Preload("Department").
		Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scientist not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scientist": user,
	})
}

// CreateScientist creates a new account (admin only)
func CreateScientist(c *gin.Context) {
	type CreateScientistRequest struct {
		UserFname    string `json:"user_fname" binding:"required"`
		UserLname    string `json:"user_lname" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=8"`
		RoleID       int    `json:"role_id" binding:"required"`
		DepartmentID int    `json:"department_id" binding:"required"`
	}

	var req CreateScientistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		UserFname:    utils.SanitizeInput(req.UserFname),
		UserLname:    utils.SanitizeInput(req.UserLname),
		Email:        req.Email,
		Password:     hashed,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create scientist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Scientist created successfully",
		"scientist": user,
	})
}

// UpdateScientist updates account details (admin only)
func UpdateScientist(c *gin.Context) {
	id := c.Param("id")

	type UpdateScientistRequest struct {
		UserFname    *string `json:"user_fname"`
		UserLname    *string `json:"user_lname"`
		RoleID       *int    `json:"role_id"`
		DepartmentID *int    `json:"department_id"`
		LabName      *string `json:"lab_name"`
		Phone        *string `json:"phone"`
		Orcid        *string `json:"orcid"`
	}

	var req UpdateScientistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Orcid != nil && *req.Orcid != "" && !utils.ValidateOrcid(*req.Orcid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ORCID iD"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scientist not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.UserFname != nil {
		updates["user_fname"] = utils.SanitizeInput(*req.UserFname)
	}
	if req.UserLname != nil {
		updates["user_lname"] = utils.SanitizeInput(*req.UserLname)
	}
	if req.RoleID != nil {
		updates["role_id"] = *req.RoleID
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if req.LabName != nil {
		updates["lab_name"] = *req.LabName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Orcid != nil {
		updates["orcid"] = *req.Orcid
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update scientist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Scientist updated successfully",
		"scientist": user,
	})
}

// DeleteScientist soft deletes an account (admin only)
func DeleteScientist(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scientist not found"})
		return
	}

	now := time.Now()
	user.DeleteAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete scientist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scientist deleted successfully"})
}

// GetDepartments returns all active departments
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Where("is_active = 'active' AND delete_at IS NULL").
		Order("department_name").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": departments,
	})
}
