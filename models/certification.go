package models

import "time"

// CertificationModule is a named training/compliance course with a defined
// renewal period. Reference data owned by configuration (admin CRUD).
type CertificationModule struct {
	ModuleID         int        `gorm:"primaryKey;column:module_id" json:"module_id"`
	ModuleName       string     `gorm:"column:module_name" json:"module_name"`
	Code             string     `gorm:"column:code" json:"code"`
	IsCore           bool       `gorm:"column:is_core" json:"is_core"`
	ExpirationMonths int        `gorm:"column:expiration_months" json:"expiration_months"`
	ModuleOrder      int        `gorm:"column:module_order" json:"module_order"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// CertificationRecord is one scientist's completion of one training module.
// Created when an administrator confirms an uploaded certificate. Renewal
// creates a new record; old records stay for audit and the matrix picks the
// latest end_date per (user, module). There is no stored status column:
// displayed status is recomputed from end_date on every read.
type CertificationRecord struct {
	RecordID    int        `gorm:"primaryKey;column:record_id" json:"record_id"`
	UserID      int        `gorm:"column:user_id" json:"user_id"`
	ModuleID    int        `gorm:"column:module_id" json:"module_id"`
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	FileID      *int       `gorm:"column:file_id" json:"file_id,omitempty"`
	ConfirmedBy *int       `gorm:"column:confirmed_by" json:"confirmed_by,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User   User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Module CertificationModule `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
	File   *FileUpload         `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

// TableName overrides
func (CertificationModule) TableName() string {
	return "certification_modules"
}

func (CertificationRecord) TableName() string {
	return "certification_records"
}
