package services

import (
	"reflect"
	"testing"
	"time"

	"iris-api/models"
)

func completeForm() WizardForm {
	return WizardForm{
		Title:                 "Effects of sleep deprivation on memory",
		Description:           "A randomized controlled study",
		StudyDesign:           "rct",
		RiskLevel:             "minimal",
		DataCollectionMethods: []string{"survey", "interview"},
		ProtocolType:          "expedited",
	}
}

func TestStepCompletePredicates(t *testing.T) {
	full := WizardState{Form: completeForm(), DocumentCount: MinRequiredDocuments}

	cases := []struct {
		name  string
		state WizardState
		step  WizardStep
		want  bool
	}{
		{"basic complete", full, StepBasic, true},
		{"basic missing title", WizardState{Form: WizardForm{Description: "d", StudyDesign: "rct"}}, StepBasic, false},
		{"basic missing study design", WizardState{Form: WizardForm{Title: "t", Description: "d"}}, StepBasic, false},
		{"risk complete", full, StepRisk, true},
		{"risk no methods", WizardState{Form: WizardForm{RiskLevel: "minimal"}}, StepRisk, false},
		{"regulatory complete", full, StepRegulatory, true},
		{"regulatory empty", WizardState{}, StepRegulatory, false},
		{"documents at minimum", WizardState{DocumentCount: 3}, StepDocuments, true},
		{"documents below minimum", WizardState{DocumentCount: 2}, StepDocuments, false},
		{"review never self-satisfied", full, StepReview, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StepComplete(tc.state, tc.step); got != tc.want {
				t.Fatalf("StepComplete(%s) = %v, want %v", tc.step, got, tc.want)
			}
		})
	}
}

func TestNextBlockedOnIncompleteStep(t *testing.T) {
	state := WizardState{Form: WizardForm{Title: "only a title"}}

	advanced := Next(state)
	if advanced.StepIndex != 0 {
		t.Fatalf("next on incomplete step must not advance, got index %d", advanced.StepIndex)
	}
	if !reflect.DeepEqual(advanced, state) {
		t.Fatalf("blocked next changed state: %+v vs %+v", advanced, state)
	}
}

func TestNextAdvancesThroughCompleteSteps(t *testing.T) {
	state := WizardState{Form: completeForm(), DocumentCount: 3}

	for want := 1; want <= int(StepReview); want++ {
		state = Next(state)
		if state.StepIndex != want {
			t.Fatalf("expected step index %d, got %d", want, state.StepIndex)
		}
	}

	// Review is terminal; only submit leaves it.
	if final := Next(state); final.StepIndex != int(StepReview) {
		t.Fatalf("next on review must not advance, got %d", final.StepIndex)
	}
}

func TestPrevThenNextRoundTrip(t *testing.T) {
	state := WizardState{Form: completeForm(), DocumentCount: 3}
	state = Next(state) // -> risk
	state = Next(state) // -> regulatory

	back := Prev(state)
	if back.StepIndex != state.StepIndex-1 {
		t.Fatalf("prev should move back one step, got %d", back.StepIndex)
	}
	if !reflect.DeepEqual(back.Form, state.Form) {
		t.Fatalf("prev lost form data: %+v vs %+v", back.Form, state.Form)
	}

	again := Next(back)
	if !reflect.DeepEqual(again, state) {
		t.Fatalf("prev then next must restore the same state: %+v vs %+v", again, state)
	}
}

func TestPrevAtFirstStepIsNoOp(t *testing.T) {
	state := WizardState{Form: completeForm()}
	if got := Prev(state); got.StepIndex != 0 {
		t.Fatalf("prev at first step must stay, got %d", got.StepIndex)
	}
}

func TestDocumentsStepGatesOnCount(t *testing.T) {
	state := WizardState{Form: completeForm(), DocumentCount: 2}
	state.StepIndex = int(StepDocuments)

	blocked := Next(state)
	if blocked.StepIndex != int(StepDocuments) {
		t.Fatalf("next with 2 documents must be a no-op, got %d", blocked.StepIndex)
	}

	state.DocumentCount = 3
	advanced := Next(state)
	if advanced.Step() != StepReview {
		t.Fatalf("next with 3 documents must advance to review, got %s", advanced.Step())
	}
}

func TestIncompleteSteps(t *testing.T) {
	empty := WizardState{}
	incomplete := IncompleteSteps(empty)
	if len(incomplete) != 4 {
		t.Fatalf("empty wizard should have 4 incomplete gating steps, got %d", len(incomplete))
	}

	ready := WizardState{Form: completeForm(), DocumentCount: 3}
	if left := IncompleteSteps(ready); len(left) != 0 {
		t.Fatalf("complete wizard should have no incomplete steps, got %v", left)
	}
}

func TestSubmitPayload(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	payload, err := SubmitPayload(completeForm(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload["workflow_status"] != models.StatusSubmitted {
		t.Fatalf("payload status = %v, want %s", payload["workflow_status"], models.StatusSubmitted)
	}
	if payload["submission_date"] != now {
		t.Fatalf("payload submission date = %v, want %v", payload["submission_date"], now)
	}
	if payload["data_collection_methods"] != `["survey","interview"]` {
		t.Fatalf("unexpected methods encoding: %v", payload["data_collection_methods"])
	}
	if payload["title"] != "Effects of sleep deprivation on memory" {
		t.Fatalf("payload title = %v", payload["title"])
	}
}

func TestWizardStateFromApplication(t *testing.T) {
	methods := `["survey","observation"]`
	app := models.IrbApplication{
		Title:                 "Study",
		Description:           "Desc",
		StudyDesign:           "cohort",
		RiskLevel:             "moderate",
		ProtocolType:          "full_board",
		DataCollectionMethods: &methods,
	}

	state := WizardStateFromApplication(app, 2)
	if state.DocumentCount != 2 {
		t.Fatalf("document count = %d, want 2", state.DocumentCount)
	}
	if !reflect.DeepEqual(state.Form.DataCollectionMethods, []string{"survey", "observation"}) {
		t.Fatalf("methods = %v", state.Form.DataCollectionMethods)
	}
	if !StepComplete(state, StepBasic) || !StepComplete(state, StepRisk) || !StepComplete(state, StepRegulatory) {
		t.Fatalf("rebuilt form should satisfy the form steps")
	}
	if StepComplete(state, StepDocuments) {
		t.Fatalf("2 documents must not satisfy the documents step")
	}
}

func TestParseWizardStep(t *testing.T) {
	step, err := ParseWizardStep(" Risk ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step != StepRisk {
		t.Fatalf("parsed %s, want risk", step)
	}

	if _, err := ParseWizardStep("payment"); err == nil {
		t.Fatal("expected error for unknown step")
	}
}
