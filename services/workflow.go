package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"iris-api/config"
	"iris-api/models"

	"gorm.io/gorm"
)

// sendMailFunc is swapped out by tests.
var sendMailFunc = config.SendMail

// ErrStatusConflict is returned when the guarded status update matches no
// rows: another request changed the application's workflow status between
// the read and the write. The losing request must not record history or
// notify.
var ErrStatusConflict = errors.New("application status was changed by another request")

// workflowTransitions is the allowed-transition table for IRB applications.
// Approved and rejected are terminal; revisions_requested loops back to an
// editable state and re-enters the flow through submit.
var workflowTransitions = map[string][]string{
	models.StatusDraft:              {models.StatusSubmitted},
	models.StatusSubmitted:          {models.StatusUnderReview},
	models.StatusUnderReview:        {models.StatusApproved, models.StatusRejected, models.StatusRevisionsRequested},
	models.StatusRevisionsRequested: {models.StatusSubmitted},
	models.StatusApproved:           {},
	models.StatusRejected:           {},
}

// CanTransition reports whether the workflow allows moving from one status
// to another.
func CanTransition(from, to string) bool {
	for _, allowed := range workflowTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// notificationType maps a new workflow status to the notification severity
// shown to the principal investigator.
func notificationType(status string) string {
	switch status {
	case models.StatusApproved:
		return "success"
	case models.StatusRejected:
		return "error"
	case models.StatusRevisionsRequested:
		return "warning"
	default:
		return "info"
	}
}

func statusChangeMessage(app *models.IrbApplication, newStatus string, comment *string) (string, string) {
	title := fmt.Sprintf("IRB application %s: %s", app.ApplicationNumber, newStatus)
	message := fmt.Sprintf("Your IRB application \"%s\" is now %s.", app.Title, newStatus)
	if comment != nil && *comment != "" {
		message += " Reviewer comment: " + *comment
	}
	return title, message
}

// ApplyTransition moves an application to a new workflow status inside a
// single transaction: the current status is re-checked under the transaction
// so concurrent duplicate actions fail cleanly instead of double-applying.
// A history row is appended for every applied transition. Notification and
// email delivery happen after commit; email failure is logged, never returned.
func ApplyTransition(db *gorm.DB, applicationID int, newStatus string, changedBy int, comment *string) (*models.IrbApplication, error) {
	var app models.IrbApplication
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ? AND delete_at IS NULL", applicationID).
			First(&app).Error; err != nil {
			return fmt.Errorf("application not found: %w", err)
		}

		oldStatus := app.WorkflowStatus
		if !CanTransition(oldStatus, newStatus) {
			return fmt.Errorf("cannot transition from %s to %s", oldStatus, newStatus)
		}

		updates := map[string]interface{}{
			"workflow_status": newStatus,
			"update_at":       now,
		}
		switch newStatus {
		case models.StatusSubmitted:
			updates["submission_date"] = now
		case models.StatusApproved, models.StatusRejected:
			updates["decision_date"] = now
			if comment != nil {
				updates["decision_comment"] = *comment
			}
		}

		result := tx.Model(&models.IrbApplication{}).
			Where("application_id = ? AND workflow_status = ?", applicationID, oldStatus).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update application: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		history := models.IrbStatusHistory{
			ApplicationID: applicationID,
			OldStatus:     &oldStatus,
			NewStatus:     newStatus,
			ChangedBy:     changedBy,
			Comment:       comment,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		app.WorkflowStatus = newStatus
		app.UpdateAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, &app, newStatus, comment)

	return &app, nil
}

func notifyStatusChange(db *gorm.DB, app *models.IrbApplication, newStatus string, comment *string) {
	title, message := statusChangeMessage(app, newStatus, comment)

	appID := uint(app.ApplicationID)
	notification := models.Notification{
		UserID:               uint(app.PrincipalInvestigatorID),
		Title:                title,
		Message:              message,
		Type:                 notificationType(newStatus),
		RelatedApplicationID: &appID,
		CreateAt:             time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create status notification for application %d: %v", app.ApplicationID, err)
	}

	var pi models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", app.PrincipalInvestigatorID).
		First(&pi).Error; err != nil {
		log.Printf("Warning: failed to load PI for application %d: %v", app.ApplicationID, err)
		return
	}

	html := fmt.Sprintf("<p>Dear %s %s,</p><p>%s</p>", pi.UserFname, pi.UserLname, message)
	if err := sendMailFunc([]string{pi.Email}, title, html); err != nil {
		log.Printf("Warning: failed to send status email for application %d: %v", app.ApplicationID, err)
	}
}
