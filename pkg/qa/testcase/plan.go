package testcase

// Coverage summarizes a plan's distribution across test types and priorities.
type Coverage struct {
	PositiveTests  int `json:"positive_tests"`
	NegativeTests  int `json:"negative_tests"`
	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`
}

// TestPlan groups generated cases under a single plan with coverage counts.
type TestPlan struct {
	TestPlanID     string     `json:"test_plan_id"`
	Title          string     `json:"title"`
	TotalTestCases int        `json:"total_test_cases"`
	TestCases      []TestCase `json:"test_cases"`
	Coverage       Coverage   `json:"coverage"`
}

// BuildTestPlan wraps cases into a plan and tallies coverage.
func BuildTestPlan(cases []TestCase) TestPlan {
	plan := TestPlan{
		TestPlanID:     "TP-001",
		Title:          "Automated Test Plan",
		TotalTestCases: len(cases),
		TestCases:      cases,
	}

	for _, tc := range cases {
		switch tc.TestType {
		case "positive":
			plan.Coverage.PositiveTests++
		case "negative":
			plan.Coverage.NegativeTests++
		}
		switch tc.Priority {
		case "high":
			plan.Coverage.HighPriority++
		case "medium":
			plan.Coverage.MediumPriority++
		case "low":
			plan.Coverage.LowPriority++
		}
	}

	return plan
}
