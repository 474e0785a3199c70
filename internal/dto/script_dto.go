package dto

import (
	"qa-agent-be/pkg/qa/script"
	"qa-agent-be/pkg/qa/testcase"
)

// GenerateScriptRequest takes either a test id referencing a case held in
// the session, or an inline test case.
type GenerateScriptRequest struct {
	TestID      string             `json:"test_id"`
	TestCase    *testcase.TestCase `json:"test_case"`
	HTMLContent string             `json:"html_content"`
}

type GenerateScriptResponse struct {
	TestID     string                  `json:"test_id"`
	Script     string                  `json:"script"`
	Validation script.ValidationResult `json:"validation"`
}

type GenerateSuiteRequest struct {
	TestCases   []testcase.TestCase `json:"test_cases" validate:"required,min=1"`
	HTMLContent string              `json:"html_content"`
}

type GenerateSuiteResponse struct {
	Scripts map[string]string `json:"scripts"`
}
