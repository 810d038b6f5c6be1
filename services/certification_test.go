package services

import (
	"testing"
	"time"

	"iris-api/models"
)

func TestEvaluateStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	days := func(n int) *time.Time {
		d := now.AddDate(0, 0, n)
		return &d
	}

	cases := []struct {
		name    string
		endDate *time.Time
		want    CertificationStatus
	}{
		{"nil end date", nil, CertStatusNever},
		{"one day expired", days(-1), CertStatusExpired},
		{"long expired", days(-400), CertStatusExpired},
		{"one hour expired", func() *time.Time { d := now.Add(-time.Hour); return &d }(), CertStatusExpired},
		{"exactly now", days(0), CertStatusExpiring},
		{"ten days left", days(10), CertStatusExpiring},
		{"window boundary thirty days", days(30), CertStatusExpiring},
		{"just past the window", days(31), CertStatusValid},
		{"one year left", days(365), CertStatusValid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateStatus(tc.endDate, now)
			if got.Status != tc.want {
				t.Fatalf("EvaluateStatus(%v) = %s, want %s", tc.endDate, got.Status, tc.want)
			}
			if got.Label == "" {
				t.Fatalf("EvaluateStatus(%v) returned empty label", tc.endDate)
			}
		})
	}
}

func TestEvaluateStatusIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 10)

	first := EvaluateStatus(&end, now)
	second := EvaluateStatus(&end, now)
	if first != second {
		t.Fatalf("repeated evaluation differs: %+v vs %+v", first, second)
	}
	if first.DaysLeft != 10 {
		t.Fatalf("expected 10 days left, got %d", first.DaysLeft)
	}
}

func TestBuildMatrixRows(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	oldEnd := now.AddDate(0, 0, -100)
	newEnd := now.AddDate(0, 0, 200)

	users := []models.User{
		{UserID: 1, UserFname: "Ada", UserLname: "Lovelace"},
		{UserID: 2, UserFname: "Rosalind", UserLname: "Franklin"},
	}
	modules := []models.CertificationModule{
		{ModuleID: 10, ModuleName: "Biosafety", IsCore: true},
		{ModuleID: 11, ModuleName: "Animal Handling"},
	}
	records := []models.CertificationRecord{
		// User 1 renewed Biosafety: the newer end date must win.
		{RecordID: 100, UserID: 1, ModuleID: 10, EndDate: &oldEnd},
		{RecordID: 101, UserID: 1, ModuleID: 10, EndDate: &newEnd},
	}

	rows := BuildMatrixRows(users, modules, records, now)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	byPair := make(map[[2]int]MatrixRow, len(rows))
	for _, row := range rows {
		byPair[[2]int{row.UserID, row.ModuleID}] = row
	}

	renewed := byPair[[2]int{1, 10}]
	if renewed.Status != CertStatusValid {
		t.Fatalf("renewed record should be valid, got %s", renewed.Status)
	}
	if renewed.RecordID == nil || *renewed.RecordID != 101 {
		t.Fatalf("expected latest record 101, got %v", renewed.RecordID)
	}

	missing := byPair[[2]int{2, 11}]
	if missing.Status != CertStatusNever {
		t.Fatalf("pair without record should be never, got %s", missing.Status)
	}
	if missing.EndDate != nil {
		t.Fatalf("pair without record should have nil end date")
	}
}

func TestRenewalEndDate(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	module := models.CertificationModule{ExpirationMonths: 12}
	end := RenewalEndDate(module, start)
	if end == nil {
		t.Fatal("expected end date for module with cadence")
	}
	if want := start.AddDate(0, 12, 0); !end.Equal(want) {
		t.Fatalf("end date = %v, want %v", end, want)
	}

	perpetual := models.CertificationModule{ExpirationMonths: 0}
	if got := RenewalEndDate(perpetual, start); got != nil {
		t.Fatalf("module without cadence should never expire, got %v", got)
	}
}
