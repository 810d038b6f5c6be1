package models

import "time"

type Contract struct {
	ContractID int        `gorm:"primaryKey;column:contract_id" json:"contract_id"`
	Title      string     `gorm:"column:title" json:"title"`
	Sponsor    string     `gorm:"column:sponsor" json:"sponsor"`
	UserID     int        `gorm:"column:user_id" json:"user_id"`
	StartDate  *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate    *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	Amount     float64    `gorm:"column:amount" json:"amount"`
	Status     string     `gorm:"column:status" json:"status"` // active|closed|pending
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Contract) TableName() string {
	return "contracts"
}
