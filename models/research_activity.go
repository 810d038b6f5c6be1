package models

import "time"

type ResearchActivity struct {
	ActivityID  int        `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	LeadUserID  int        `gorm:"column:lead_user_id" json:"lead_user_id"`
	Status      string     `gorm:"column:status" json:"status"` // active|completed|suspended
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Lead User `gorm:"foreignKey:LeadUserID" json:"lead,omitempty"`
}

func (ResearchActivity) TableName() string {
	return "research_activities"
}
