package services

import (
	"fmt"
	"time"

	"iris-api/models"
)

// CertificationStatus is the display state derived from a record's end date.
type CertificationStatus string

const (
	CertStatusValid    CertificationStatus = "valid"
	CertStatusExpiring CertificationStatus = "expiring"
	CertStatusExpired  CertificationStatus = "expired"
	CertStatusNever    CertificationStatus = "never"
)

// ExpiringWindowDays is the number of days before the end date during which a
// certification is shown in the warning state. The boundary day itself counts
// as expiring.
const ExpiringWindowDays = 30

// StatusResult pairs the derived status with its display label.
type StatusResult struct {
	Status   CertificationStatus `json:"status"`
	Label    string              `json:"label"`
	DaysLeft int                 `json:"days_left"`
}

// EvaluateStatus maps a certification end date to its display status relative
// to now. It is a pure function: status is never stored, only recomputed.
//
//   - nil end date            -> never
//   - end date before now     -> expired
//   - 0..30 whole days left   -> expiring (both boundaries inclusive)
//   - more than 30 days left  -> valid
func EvaluateStatus(endDate *time.Time, now time.Time) StatusResult {
	if endDate == nil {
		return StatusResult{Status: CertStatusNever, Label: "Never completed"}
	}

	if endDate.Before(now) {
		days := -int(now.Sub(*endDate).Hours() / 24)
		return StatusResult{Status: CertStatusExpired, Label: "Expired", DaysLeft: days}
	}

	days := int(endDate.Sub(now).Hours() / 24)
	if days <= ExpiringWindowDays {
		return StatusResult{
			Status:   CertStatusExpiring,
			Label:    fmt.Sprintf("Expires in %d days", days),
			DaysLeft: days,
		}
	}

	return StatusResult{Status: CertStatusValid, Label: "Valid", DaysLeft: days}
}

// MatrixRow is one cell of the certification matrix: one scientist against
// one training module, with the status derived from the latest record.
type MatrixRow struct {
	UserID        int                 `json:"user_id"`
	ScientistName string              `json:"scientist_name"`
	ModuleID      int                 `json:"module_id"`
	ModuleName    string              `json:"module_name"`
	IsCore        bool                `json:"is_core"`
	RecordID      *int                `json:"record_id,omitempty"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	Status        CertificationStatus `json:"status"`
	Label         string              `json:"label"`
	DaysLeft      int                 `json:"days_left"`
}

// latestRecord picks the record that should represent a (user, module) pair:
// the one with the latest end date. Renewals create new records, so dated
// records win over undated ones and newer end dates win over older.
func latestRecord(current *models.CertificationRecord, candidate models.CertificationRecord) models.CertificationRecord {
	if current == nil {
		return candidate
	}
	if candidate.EndDate == nil {
		return *current
	}
	if current.EndDate == nil || candidate.EndDate.After(*current.EndDate) {
		return candidate
	}
	return *current
}

// BuildMatrixRows composes the certification matrix from scientists, modules
// and their confirmed records. Every pair produces a row; pairs without any
// record degrade to the never status.
func BuildMatrixRows(users []models.User, modules []models.CertificationModule, records []models.CertificationRecord, now time.Time) []MatrixRow {
	type pairKey struct{ userID, moduleID int }

	latest := make(map[pairKey]models.CertificationRecord)
	for _, record := range records {
		key := pairKey{record.UserID, record.ModuleID}
		if existing, ok := latest[key]; ok {
			latest[key] = latestRecord(&existing, record)
		} else {
			latest[key] = record
		}
	}

	rows := make([]MatrixRow, 0, len(users)*len(modules))
	for _, user := range users {
		for _, module := range modules {
			row := MatrixRow{
				UserID:        user.UserID,
				ScientistName: user.UserFname + " " + user.UserLname,
				ModuleID:      module.ModuleID,
				ModuleName:    module.ModuleName,
				IsCore:        module.IsCore,
			}

			if record, ok := latest[pairKey{user.UserID, module.ModuleID}]; ok {
				recordID := record.RecordID
				row.RecordID = &recordID
				row.StartDate = record.StartDate
				row.EndDate = record.EndDate
			}

			result := EvaluateStatus(row.EndDate, now)
			row.Status = result.Status
			row.Label = result.Label
			row.DaysLeft = result.DaysLeft

			rows = append(rows, row)
		}
	}

	return rows
}

// RenewalEndDate derives a record's end date from its start date and the
// module's renewal cadence. Modules with no cadence never expire.
func RenewalEndDate(module models.CertificationModule, startDate time.Time) *time.Time {
	if module.ExpirationMonths <= 0 {
		return nil
	}
	end := startDate.AddDate(0, module.ExpirationMonths, 0)
	return &end
}
