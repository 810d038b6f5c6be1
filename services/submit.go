package services

import (
	"fmt"
	"strings"
	"time"

	"iris-api/models"

	"gorm.io/gorm"
)

// IncompleteStepsError is returned by SubmitApplication when gating steps of
// the wizard are not complete. A submit attempt never reaches the database
// write when gating fails.
type IncompleteStepsError struct {
	Steps []WizardStep
}

func (e *IncompleteStepsError) Error() string {
	names := make([]string, 0, len(e.Steps))
	for _, step := range e.Steps {
		names = append(names, step.String())
	}
	return fmt.Sprintf("incomplete steps: %s", strings.Join(names, ", "))
}

// SubmitApplication moves an editable application to the submitted status.
// The whole submit is one atomic transaction: the gating predicates and the
// current workflow status are re-checked under the transaction, so a
// duplicate submit or an incomplete draft fails without mutating anything
// and the draft is retained unchanged for retry.
func SubmitApplication(db *gorm.DB, applicationID int, changedBy int) (*models.IrbApplication, error) {
	var app models.IrbApplication
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ? AND delete_at IS NULL", applicationID).
			First(&app).Error; err != nil {
			return fmt.Errorf("application not found: %w", err)
		}

		if !app.IsEditable() {
			return fmt.Errorf("application is %s and cannot be submitted", app.WorkflowStatus)
		}

		var documentCount int64
		if err := tx.Model(&models.IrbDocument{}).
			Where("application_id = ? AND delete_at IS NULL", applicationID).
			Count(&documentCount).Error; err != nil {
			return fmt.Errorf("failed to count documents: %w", err)
		}

		state := WizardStateFromApplication(app, int(documentCount))
		if incomplete := IncompleteSteps(state); len(incomplete) > 0 {
			return &IncompleteStepsError{Steps: incomplete}
		}

		payload, err := SubmitPayload(state.Form, now)
		if err != nil {
			return err
		}

		oldStatus := app.WorkflowStatus
		result := tx.Model(&models.IrbApplication{}).
			Where("application_id = ? AND workflow_status = ?", applicationID, oldStatus).
			Updates(payload)
		if result.Error != nil {
			return fmt.Errorf("failed to submit application: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		history := models.IrbStatusHistory{
			ApplicationID: applicationID,
			OldStatus:     &oldStatus,
			NewStatus:     models.StatusSubmitted,
			ChangedBy:     changedBy,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		app.WorkflowStatus = models.StatusSubmitted
		app.SubmissionDate = &now
		app.UpdateAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, &app, models.StatusSubmitted, nil)

	return &app, nil
}
