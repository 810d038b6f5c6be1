package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/utils"

	"github.com/gin-gonic/gin"
)

// UploadIrbDocument handles document upload for an IRB application
func UploadIrbDocument(c *gin.Context) {
	applicationID := c.Param("id")
	userID, _ := c.Get("userID")

	// Check if application exists and belongs to user
	var application models.IrbApplication
	if err := config.DB.Where("application_id = ? AND principal_investigator_id = ? AND delete_at IS NULL",
		applicationID, userID).First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if !application.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot upload documents to a submitted application"})
		return
	}

	documentLabel := strings.TrimSpace(c.PostForm("document_label"))
	if documentLabel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_label is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Validate file size
	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	// Validate file type
	allowedTypes := map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	// One folder per application
	appFolder := filepath.Join(uploadPath, fmt.Sprintf("irb-%d", application.ApplicationID))
	if err := os.MkdirAll(appFolder, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}

	storedName := utils.GenerateStoredFilename(file.Filename)
	fullPath := filepath.Join(appFolder, storedName)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	fileUpload := models.FileUpload{
		OriginalName: file.Filename,
		StoredPath:   fullPath,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		IsPublic:     false,
		UploadedBy:   userID.(int),
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	if err := config.DB.Create(&fileUpload).Error; err != nil {
		// Delete uploaded file if database save fails
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file info"})
		return
	}

	document := models.IrbDocument{
		ApplicationID: application.ApplicationID,
		FileID:        fileUpload.FileID,
		DocumentLabel: documentLabel,
		UploadedBy:    userID.(int),
		UploadedAt:    &now,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&document).Error; err != nil {
		os.Remove(fullPath)
		config.DB.Delete(&fileUpload)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"document": document,
		"file":     fileUpload,
	})
}

// GetIrbDocuments returns all documents for an application
func GetIrbDocuments(c *gin.Context) {
	applicationID := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	query := config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID)
	if roleID.(int) == 1 { // scientists only see their own
		query = query.Where("principal_investigator_id = ?", userID)
	}

	var application models.IrbApplication
	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var documents []models.IrbDocument
	if err := config.DB.Preload("File").
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// DownloadIrbDocument handles document download
func DownloadIrbDocument(c *gin.Context) {
	documentID := c.Param("document_id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var document models.IrbDocument
	if err := config.DB.Preload("Application").Preload("File").
		Where("document_id = ? AND irb_documents.delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if roleID.(int) == 1 && document.Application.PrincipalInvestigatorID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	fullPath := document.File.StoredPath
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", document.File.OriginalName))
	c.Header("Content-Type", "application/octet-stream")

	c.File(fullPath)
}

// DeleteIrbDocument soft deletes a document
func DeleteIrbDocument(c *gin.Context) {
	documentID := c.Param("document_id")
	userID, _ := c.Get("userID")

	var document models.IrbDocument
	if err := config.DB.Preload("Application").
		Where("document_id = ? AND irb_documents.delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	// Check ownership
	if document.Application.PrincipalInvestigatorID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if !document.Application.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete documents from a submitted application"})
		return
	}

	now := time.Now()
	document.DeleteAt = &now

	if err := config.DB.Save(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
