package services

import (
	"fmt"
	"log"
	"time"

	"iris-api/models"

	"gorm.io/gorm"
)

// NotifyExpiringCertifications scans confirmed certification records that
// have entered the expiring window and sends each affected scientist a
// renewal reminder, plus an in-app notification. Returns the number of
// reminders sent. One reminder per record per run; the caller schedules runs.
func NotifyExpiringCertifications(db *gorm.DB, now time.Time) (int, error) {
	windowEnd := now.AddDate(0, 0, ExpiringWindowDays+1)

	var records []models.CertificationRecord
	if err := db.Preload("User").Preload("Module").
		Where("end_date IS NOT NULL AND end_date >= ? AND end_date < ? AND delete_at IS NULL", now, windowEnd).
		Find(&records).Error; err != nil {
		return 0, fmt.Errorf("failed to load expiring certification records: %w", err)
	}

	sent := 0
	for _, record := range records {
		result := EvaluateStatus(record.EndDate, now)
		if result.Status != CertStatusExpiring {
			continue
		}

		title := fmt.Sprintf("Certification expiring: %s", record.Module.ModuleName)
		message := fmt.Sprintf("Your %s certification expires in %d days (%s). Please renew it.",
			record.Module.ModuleName, result.DaysLeft, record.EndDate.Format("2006-01-02"))

		notification := models.Notification{
			UserID:   uint(record.UserID),
			Title:    title,
			Message:  message,
			Type:     "warning",
			CreateAt: now,
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("Warning: failed to create expiry notification for record %d: %v", record.RecordID, err)
		}

		html := fmt.Sprintf("<p>Dear %s %s,</p><p>%s</p>",
			record.User.UserFname, record.User.UserLname, message)
		if err := sendMailFunc([]string{record.User.Email}, title, html); err != nil {
			log.Printf("Warning: failed to send expiry email for record %d: %v", record.RecordID, err)
			continue
		}
		sent++
	}

	return sent, nil
}
