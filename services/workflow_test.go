package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"iris-api/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusDraft, models.StatusSubmitted, true},
		{models.StatusSubmitted, models.StatusUnderReview, true},
		{models.StatusUnderReview, models.StatusApproved, true},
		{models.StatusUnderReview, models.StatusRejected, true},
		{models.StatusUnderReview, models.StatusRevisionsRequested, true},
		{models.StatusRevisionsRequested, models.StatusSubmitted, true},

		// Skipping ahead or re-deciding is not allowed.
		{models.StatusDraft, models.StatusApproved, false},
		{models.StatusDraft, models.StatusUnderReview, false},
		{models.StatusSubmitted, models.StatusApproved, false},
		{models.StatusApproved, models.StatusRejected, false},
		{models.StatusRejected, models.StatusSubmitted, false},
		{models.StatusApproved, models.StatusDraft, false},
		{"bogus", models.StatusSubmitted, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{models.StatusApproved, models.StatusRejected} {
		if len(workflowTransitions[terminal]) != 0 {
			t.Errorf("terminal status %s has outgoing transitions", terminal)
		}
	}
}

func TestNotificationType(t *testing.T) {
	cases := map[string]string{
		models.StatusApproved:           "success",
		models.StatusRejected:           "error",
		models.StatusRevisionsRequested: "warning",
		models.StatusSubmitted:          "info",
		models.StatusUnderReview:        "info",
	}
	for status, want := range cases {
		if got := notificationType(status); got != want {
			t.Errorf("notificationType(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestStatusChangeMessageIncludesComment(t *testing.T) {
	app := &models.IrbApplication{
		ApplicationNumber: "IRB-20260315-0001",
		Title:             "Study",
	}
	comment := "Please clarify the consent form"

	title, message := statusChangeMessage(app, models.StatusRevisionsRequested, &comment)
	if title == "" {
		t.Fatal("expected non-empty title")
	}
	if !strings.Contains(message, comment) {
		t.Fatalf("message %q missing comment", message)
	}

	_, noComment := statusChangeMessage(app, models.StatusApproved, nil)
	if strings.Contains(noComment, "Reviewer comment") {
		t.Fatalf("message %q should not mention a comment", noComment)
	}
}

func submittedAppRow() []driver.Value {
	return []driver.Value{
		int64(1), "IRB-20260310-0001", "Sleep and recall", "Effects of sleep on memory recall",
		"longitudinal cohort", "minimal", `["survey"]`,
		"expedited", "submitted", int64(7),
	}
}

func TestApplyTransitionAppendsHistoryAndNotifies(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .irb_applications.`),
			columns: applicationColumns,
			rows:    [][]driver.Value{submittedAppRow()},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .irb_applications. SET`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .irb_status_history.`),
		},
	}
	steps = append(steps, submitNotifySteps()...)

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()
	mailedTo := captureMail(t)

	app, err := ApplyTransition(gormDB, 1, models.StatusUnderReview, 42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.WorkflowStatus != models.StatusUnderReview {
		t.Fatalf("expected under_review, got %s", app.WorkflowStatus)
	}
	if len(*mailedTo) != 1 || (*mailedTo)[0][0] != "ada@institute.org" {
		t.Fatalf("unexpected recipients: %v", *mailedTo)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestApplyTransitionLostRaceIsConflict(t *testing.T) {
	// Another reviewer applied a decision first: the guarded update matches
	// zero rows and the transition must fail without history or mail.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .irb_applications.`),
			columns: applicationColumns,
			rows:    [][]driver.Value{submittedAppRow()},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .irb_applications. SET`),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()
	mailedTo := captureMail(t)

	app, err := ApplyTransition(gormDB, 1, models.StatusUnderReview, 42, nil)
	if app != nil {
		t.Fatalf("expected no application, got %+v", app)
	}
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}
	if len(*mailedTo) != 0 {
		t.Fatalf("expected no mail, got %v", *mailedTo)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
