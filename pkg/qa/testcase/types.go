// Package testcase holds the structured test case model, the generation
// prompts and the parser that turns raw model output into validated cases.
package testcase

import "github.com/go-playground/validator/v10"

// TestCase is one generated QA test case. Required fields are enforced by
// the parser; optional fields pass through whatever the model produced.
type TestCase struct {
	TestID         string   `json:"test_id" validate:"required"`
	Feature        string   `json:"feature" validate:"required"`
	TestScenario   string   `json:"test_scenario" validate:"required"`
	TestType       string   `json:"test_type,omitempty"`
	Preconditions  string   `json:"preconditions,omitempty"`
	TestSteps      []string `json:"test_steps,omitempty"`
	ExpectedResult string   `json:"expected_result" validate:"required"`
	GroundedIn     string   `json:"grounded_in" validate:"required"`
	Priority       string   `json:"priority,omitempty"`
	Note           string   `json:"note,omitempty"`
}

var validate = validator.New()

// Valid reports whether the case carries every required field.
func (tc TestCase) Valid() bool {
	return validate.Struct(tc) == nil
}
