package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"iris-api/config"
	"iris-api/models"
	"iris-api/services"

	"github.com/gin-gonic/gin"
)

// loadEditableApplication fetches an application owned by the current user
// that is still open for changes.
func loadEditableApplication(c *gin.Context) (*models.IrbApplication, bool) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var application models.IrbApplication
	if err := config.DB.Where("application_id = ? AND principal_investigator_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return nil, false
	}

	if !application.IsEditable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application is not editable in its current status"})
		return nil, false
	}

	return &application, true
}

func countApplicationDocuments(applicationID int) int {
	var count int64
	config.DB.Model(&models.IrbDocument{}).
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		Count(&count)
	return int(count)
}

// GetWizardState returns the submission wizard state for a draft: the form
// values entered so far plus the completion flag of every step. Completion is
// recomputed on every request, never cached.
func GetWizardState(c *gin.Context) {
	application, ok := loadEditableApplication(c)
	if !ok {
		return
	}

	state := services.WizardStateFromApplication(*application, countApplicationDocuments(application.ApplicationID))

	steps := make([]gin.H, 0, int(services.StepReview)+1)
	for step := services.StepBasic; step <= services.StepReview; step++ {
		steps = append(steps, gin.H{
			"name":     step.String(),
			"complete": services.StepComplete(state, step),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"application_id":         application.ApplicationID,
		"workflow_status":        application.WorkflowStatus,
		"form":                   state.Form,
		"document_count":         state.DocumentCount,
		"min_required_documents": services.MinRequiredDocuments,
		"steps":                  steps,
		"can_submit":             len(services.IncompleteSteps(state)) == 0,
	})
}

// SaveWizardStep stores the field values of one wizard step on the draft.
func SaveWizardStep(c *gin.Context) {
	step, err := services.ParseWizardStep(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, ok := loadEditableApplication(c)
	if !ok {
		return
	}

	var form services.WizardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	switch step {
	case services.StepBasic:
		updates["title"] = form.Title
		updates["description"] = form.Description
		updates["study_design"] = form.StudyDesign
	case services.StepRisk:
		methodsJSON, err := json.Marshal(form.DataCollectionMethods)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data collection methods"})
			return
		}
		updates["risk_level"] = form.RiskLevel
		updates["data_collection_methods"] = string(methodsJSON)
	case services.StepRegulatory:
		updates["protocol_type"] = form.ProtocolType
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Step has no form fields"})
		return
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(application).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save step"})
		return
	}

	state := services.WizardStateFromApplication(*application, countApplicationDocuments(application.ApplicationID))

	c.JSON(http.StatusOK, gin.H{
		"message":       "Step saved",
		"step":          step.String(),
		"step_complete": services.StepComplete(state, step),
	})
}

// SubmitIrbApplication finalizes the wizard: merges all step data, moves the
// application to submitted and stamps the submission date. On any failure the
// draft is left untouched so the user can retry.
func SubmitIrbApplication(c *gin.Context) {
	userID, _ := c.Get("userID")

	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	// Ownership check before attempting the transition.
	var application models.IrbApplication
	if err := config.DB.Where("application_id = ? AND principal_investigator_id = ? AND delete_at IS NULL",
		applicationID, userID).First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	submitted, err := services.SubmitApplication(config.DB, applicationID, userID.(int))
	if err != nil {
		var incomplete *services.IncompleteStepsError
		if errors.As(err, &incomplete) {
			names := make([]string, 0, len(incomplete.Steps))
			for _, step := range incomplete.Steps {
				names = append(names, step.String())
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"error":            "Application is not ready for submission",
				"incomplete_steps": names,
			})
			return
		}
		if errors.Is(err, services.ErrStatusConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application submitted successfully",
		"application": submitted,
	})
}
