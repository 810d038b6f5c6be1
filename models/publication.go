package models

import "time"

type Publication struct {
	PublicationID   int        `gorm:"primaryKey;column:publication_id" json:"publication_id"`
	UserID          int        `gorm:"column:user_id" json:"user_id"`
	Title           string     `gorm:"column:title" json:"title"`
	Journal         string     `gorm:"column:journal" json:"journal"`
	Doi             *string    `gorm:"column:doi" json:"doi,omitempty"`
	PublicationDate *time.Time `gorm:"column:publication_date" json:"publication_date,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Publication) TableName() string {
	return "publications"
}
