package controllers

import (
	"net/http"
	"time"

	"iris-api/config"
	"iris-api/models"

	"github.com/gin-gonic/gin"
)

// GetContracts returns list of contracts
func GetContracts(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var contracts []models.Contract
	query := config.DB.Preload("User").Where("delete_at IS NULL")

	if roleID.(int) == 1 { // scientists see their own
		query = query.Where("user_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if sponsor := c.Query("sponsor"); sponsor != "" {
		query = query.Where("sponsor LIKE ?", "%"+sponsor+"%")
	}

	if err := query.Order("start_date DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contracts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": contracts,
		"total":     len(contracts),
	})
}

// GetContract returns single contract by ID
func GetContract(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var contract models.Contract
	query := config.DB.Preload("User").Where("contract_id = ? AND delete_at IS NULL", id)
	if roleID.(int) == 1 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contract": contract,
	})
}

// CreateContract records a new contract (admin only)
func CreateContract(c *gin.Context) {
	type CreateContractRequest struct {
		Title     string     `json:"title" binding:"required"`
		Sponsor   string     `json:"sponsor" binding:"required"`
		UserID    int        `json:"user_id" binding:"required"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
		Amount    float64    `json:"amount" binding:"gte=0"`
	}

	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scientist"})
		return
	}

	now := time.Now()
	contract := models.Contract{
		Title:     req.Title,
		Sponsor:   req.Sponsor,
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Amount:    req.Amount,
		Status:    "active",
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Contract created successfully",
		"contract": contract,
	})
}

// UpdateContract updates a contract (admin only)
func UpdateContract(c *gin.Context) {
	id := c.Param("id")

	type UpdateContractRequest struct {
		Title     *string    `json:"title"`
		Sponsor   *string    `json:"sponsor"`
		Status    *string    `json:"status"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
		Amount    *float64   `json:"amount"`
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contract models.Contract
	if err := config.DB.Where("contract_id = ? AND delete_at IS NULL", id).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Sponsor != nil {
		updates["sponsor"] = *req.Sponsor
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
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&contract).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Contract updated successfully",
		"contract": contract,
	})
}

// DeleteContract soft deletes a contract (admin only)
func DeleteContract(c *gin.Context) {
	id := c.Param("id")

	var contract models.Contract
	if err := config.DB.Where("contract_id = ? AND delete_at IS NULL", id).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}

	now := time.Now()
	contract.DeleteAt = &now

	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted successfully"})
}
