package models

import "time"

// Workflow status values for IRB applications. Stored as strings in
// irb_applications.workflow_status; transitions are enforced in
// services/workflow.go, never by ad-hoc updates.
const (
	StatusDraft              = "draft"
	StatusSubmitted          = "submitted"
	StatusUnderReview        = "under_review"
	StatusRevisionsRequested = "revisions_requested"
	StatusApproved           = "approved"
	StatusRejected           = "rejected"
)

type IrbApplication struct {
	ApplicationID     int     `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicationNumber string  `gorm:"column:application_number" json:"application_number"`
	Title             string  `gorm:"column:title" json:"title"`
	Description       string  `gorm:"column:description" json:"description"`
	StudyDesign       string  `gorm:"column:study_design" json:"study_design"`
	RiskLevel         string  `gorm:"column:risk_level" json:"risk_level"`
	// JSON array of method names, e.g. ["survey","interview"]
	DataCollectionMethods    *string    `gorm:"column:data_collection_methods" json:"data_collection_methods,omitempty"`
	ProtocolType             string     `gorm:"column:protocol_type" json:"protocol_type"`
	WorkflowStatus           string     `gorm:"column:workflow_status" json:"workflow_status"`
	ResearchActivityID       *int       `gorm:"column:research_activity_id" json:"research_activity_id,omitempty"`
	PrincipalInvestigatorID  int        `gorm:"column:principal_investigator_id" json:"principal_investigator_id"`
	SubmissionDate           *time.Time `gorm:"column:submission_date" json:"submission_date,omitempty"`
	DecisionDate             *time.Time `gorm:"column:decision_date" json:"decision_date,omitempty"`
	DecisionComment          string     `gorm:"column:decision_comment" json:"decision_comment"`
	CreateAt                 *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt                 *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt                 *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	PrincipalInvestigator User              `gorm:"foreignKey:PrincipalInvestigatorID" json:"principal_investigator,omitempty"`
	ResearchActivity      *ResearchActivity `gorm:"foreignKey:ResearchActivityID" json:"research_activity,omitempty"`
	Documents             []IrbDocument     `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
}

// IrbStatusHistory tracks historical workflow status changes for IRB applications.
type IrbStatusHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	OldStatus     *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus     string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy     int       `gorm:"column:changed_by" json:"changed_by"`
	Comment       *string   `gorm:"column:comment" json:"comment"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

type IrbDocument struct {
	DocumentID    int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	ApplicationID int        `gorm:"column:application_id" json:"application_id"`
	FileID        int        `gorm:"column:file_id" json:"file_id"`
	DocumentLabel string     `gorm:"column:document_label" json:"document_label"`
	UploadedBy    int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt    *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Application IrbApplication `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	File        FileUpload     `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

// TableName overrides
func (IrbApplication) TableName() string {
	return "irb_applications"
}

func (IrbStatusHistory) TableName() string {
	return "irb_status_history"
}

func (IrbDocument) TableName() string {
	return "irb_documents"
}

// IsTerminal reports whether the application has reached a final decision.
func (a *IrbApplication) IsTerminal() bool {
	return a.WorkflowStatus == StatusApproved || a.WorkflowStatus == StatusRejected
}

// IsEditable reports whether the PI may still change application fields.
func (a *IrbApplication) IsEditable() bool {
	return a.WorkflowStatus == StatusDraft || a.WorkflowStatus == StatusRevisionsRequested
}
