package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"
)

func TestNotifyExpiringCertifications(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(0, 0, 40)

	recordColumns := []string{
		"record_id", "user_id", "module_id", "start_date", "end_date",
		"file_id", "confirmed_by", "create_at", "update_at", "delete_at",
	}
	userColumns := []string{"user_id", "user_fname", "user_lname", "email", "role_id", "department_id"}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .certification_records.`),
			columns: recordColumns,
			rows: [][]driver.Value{
				// One record inside the window, one scripted past it to
				// exercise the in-code status filter.
				{int64(1), int64(7), int64(10), nil, soon, nil, nil, now, now, nil},
				{int64(2), int64(8), int64(10), nil, far, nil, nil, now, now, nil},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .certification_modules.`),
			columns: moduleColumns,
			rows:    [][]driver.Value{moduleRow(10, "Biosafety", "BIOSAFETY", 12)},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .users.`),
			columns: userColumns,
			rows: [][]driver.Value{
				{int64(7), "Ada", "Lovelace", "ada@institute.org", int64(1), int64(1)},
				{int64(8), "Rosalind", "Franklin", "rosalind@institute.org", int64(1), int64(1)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .notifications.`),
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	var mailedTo [][]string
	prevSend := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		mailedTo = append(mailedTo, to)
		return nil
	}
	defer func() { sendMailFunc = prevSend }()

	sent, err := NotifyExpiringCertifications(gormDB, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	if len(mailedTo) != 1 || len(mailedTo[0]) != 1 || mailedTo[0][0] != "ada@institute.org" {
		t.Fatalf("unexpected recipients: %v", mailedTo)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
