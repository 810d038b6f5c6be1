package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"iris-api/models"
)

// WizardStep identifies one step of the IRB submission flow.
type WizardStep int

const (
	StepBasic WizardStep = iota
	StepRisk
	StepRegulatory
	StepDocuments
	StepReview
)

var wizardStepNames = []string{"basic", "risk", "regulatory", "documents", "review"}

// MinRequiredDocuments is the minimum number of uploaded documents before the
// documents step is complete.
const MinRequiredDocuments = 3

func (s WizardStep) String() string {
	if s < 0 || int(s) >= len(wizardStepNames) {
		return "unknown"
	}
	return wizardStepNames[s]
}

// ParseWizardStep resolves a step name from a route parameter.
func ParseWizardStep(name string) (WizardStep, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for i, stepName := range wizardStepNames {
		if stepName == trimmed {
			return WizardStep(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wizard step '%s'", name)
}

// WizardForm carries the field values entered across all wizard steps.
type WizardForm struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	StudyDesign           string   `json:"study_design"`
	RiskLevel             string   `json:"risk_level"`
	DataCollectionMethods []string `json:"data_collection_methods"`
	ProtocolType          string   `json:"protocol_type"`
}

// WizardState is the explicit state of an in-progress submission. Navigation
// is a pure reduction over this value: Next and Prev return new states and
// never mutate their input.
type WizardState struct {
	StepIndex     int        `json:"step_index"`
	Form          WizardForm `json:"form"`
	DocumentCount int        `json:"document_count"`
}

// Step returns the active step for the state's index.
func (st WizardState) Step() WizardStep {
	return WizardStep(st.StepIndex)
}

// StepComplete evaluates the completion predicate for one step. Predicates
// are pure functions of the form state, re-evaluated on every call.
func StepComplete(state WizardState, step WizardStep) bool {
	switch step {
	case StepBasic:
		return state.Form.Title != "" && state.Form.Description != "" && state.Form.StudyDesign != ""
	case StepRisk:
		return state.Form.RiskLevel != "" && len(state.Form.DataCollectionMethods) > 0
	case StepRegulatory:
		return state.Form.ProtocolType != ""
	case StepDocuments:
		return state.DocumentCount >= MinRequiredDocuments
	case StepReview:
		// Only the explicit submit action terminates the flow.
		return false
	default:
		return false
	}
}

// Next advances to the following step, but only when the active step's
// completion predicate holds. An incomplete step blocks forward navigation
// and the state is returned unchanged.
func Next(state WizardState) WizardState {
	if state.Step() >= StepReview {
		return state
	}
	if !StepComplete(state, state.Step()) {
		return state
	}
	state.StepIndex++
	return state
}

// Prev moves back one step. Backward navigation is always allowed and loses
// no entered field values.
func Prev(state WizardState) WizardState {
	if state.StepIndex <= 0 {
		return state
	}
	state.StepIndex--
	return state
}

// IncompleteSteps lists the gating steps whose predicates fail. The review
// step is not a gate; an empty result means the application may be submitted.
func IncompleteSteps(state WizardState) []WizardStep {
	incomplete := make([]WizardStep, 0)
	for step := StepBasic; step < StepReview; step++ {
		if !StepComplete(state, step) {
			incomplete = append(incomplete, step)
		}
	}
	return incomplete
}

// SubmitPayload merges all step form data into the partial-update payload
// that moves an application to the submitted status.
func SubmitPayload(form WizardForm, now time.Time) (map[string]interface{}, error) {
	methodsJSON, err := json.Marshal(form.DataCollectionMethods)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data collection methods: %w", err)
	}

	return map[string]interface{}{
		"title":                   form.Title,
		"description":             form.Description,
		"study_design":            form.StudyDesign,
		"risk_level":              form.RiskLevel,
		"data_collection_methods": string(methodsJSON),
		"protocol_type":           form.ProtocolType,
		"workflow_status":         models.StatusSubmitted,
		"submission_date":         now,
		"update_at":               now,
	}, nil
}

// WizardStateFromApplication rebuilds the wizard form from a persisted draft.
func WizardStateFromApplication(app models.IrbApplication, documentCount int) WizardState {
	form := WizardForm{
		Title:                 app.Title,
		Description:           app.Description,
		StudyDesign:           app.StudyDesign,
		RiskLevel:             app.RiskLevel,
		ProtocolType:          app.ProtocolType,
		DataCollectionMethods: []string{},
	}

	if app.DataCollectionMethods != nil && *app.DataCollectionMethods != "" {
		var methods []string
		if err := json.Unmarshal([]byte(*app.DataCollectionMethods), &methods); err == nil {
			form.DataCollectionMethods = methods
		}
	}

	return WizardState{Form: form, DocumentCount: documentCount}
}
