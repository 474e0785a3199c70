package dto

import "qa-agent-be/pkg/qa/testcase"

type GenerateTestCasesRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"top_k"`
}

type GenerateTestCasesResponse struct {
	Query     string              `json:"query"`
	TestCases []testcase.TestCase `json:"test_cases"`
	Count     int                 `json:"count"`
	Fallback  bool                `json:"fallback,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type GenerateTestPlanRequest struct {
	Features []string `json:"features"`
}
