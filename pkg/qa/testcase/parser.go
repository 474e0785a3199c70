package testcase

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseResult is the outcome of parsing a model response. When Fallback is
// true the response carried no usable JSON and Cases holds a single
// placeholder wrapping the raw text for manual review.
type ParseResult struct {
	Cases    []TestCase
	Fallback bool
}

// Parse extracts the JSON array from a model response and validates each
// record. Records missing required fields are dropped. Responses without a
// parseable array degrade to a fallback case instead of an error so a flaky
// model never loses the generation round.
func Parse(response string) ParseResult {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return fallbackResult(response)
	}

	jsonStr := response[start : end+1]

	var raw []TestCase
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		// Models truncate arrays and drop commas; repair once before giving up.
		repaired, repairErr := jsonrepair.JSONRepair(jsonStr)
		if repairErr != nil {
			return fallbackResult(response)
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return fallbackResult(response)
		}
	}

	validated := make([]TestCase, 0, len(raw))
	for _, tc := range raw {
		if tc.Valid() {
			validated = append(validated, tc)
		}
	}

	return ParseResult{Cases: validated}
}

func fallbackResult(response string) ParseResult {
	return ParseResult{
		Cases: []TestCase{{
			TestID:         "TC-001",
			Feature:        "Generated from query",
			TestScenario:   "See full response",
			TestType:       "positive",
			Preconditions:  "N/A",
			TestSteps:      []string{"See full response"},
			ExpectedResult: response,
			GroundedIn:     "documentation",
			Priority:       "medium",
			Note:           "This is a fallback parse. Please review the full response.",
		}},
		Fallback: true,
	}
}
