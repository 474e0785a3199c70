package testcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validArray = `[
  {
    "test_id": "TC-001",
    "feature": "Discount Code",
    "test_scenario": "Apply a valid discount code at checkout",
    "test_type": "positive",
    "preconditions": "Cart contains at least one item",
    "test_steps": ["Open checkout", "Enter SAVE10", "Click apply"],
    "expected_result": "Total is reduced by 10%",
    "grounded_in": "checkout.md",
    "priority": "high"
  },
  {
    "test_id": "TC-002",
    "feature": "Discount Code",
    "test_scenario": "Apply an expired discount code",
    "test_type": "negative",
    "expected_result": "An error message is shown",
    "grounded_in": "checkout.md",
    "priority": "medium"
  }
]`

func TestParse_ValidArray(t *testing.T) {
	res := Parse("Here are the test cases:\n" + validArray + "\nLet me know if you need more.")

	require.False(t, res.Fallback)
	require.Len(t, res.Cases, 2)
	assert.Equal(t, "TC-001", res.Cases[0].TestID)
	assert.Equal(t, []string{"Open checkout", "Enter SAVE10", "Click apply"}, res.Cases[0].TestSteps)
	assert.Equal(t, "negative", res.Cases[1].TestType)
}

func TestParse_DropsRecordsMissingRequiredFields(t *testing.T) {
	res := Parse(`[
  {"test_id": "TC-001", "feature": "Cart", "test_scenario": "Add item", "expected_result": "Item added", "grounded_in": "cart.md"},
  {"test_id": "TC-002", "feature": "Cart", "test_scenario": "Missing expectations"}
]`)

	require.False(t, res.Fallback)
	require.Len(t, res.Cases, 1)
	assert.Equal(t, "TC-001", res.Cases[0].TestID)
}

func TestParse_RepairsTruncatedJSON(t *testing.T) {
	// Trailing comma plus a dangling bracket, as produced by token-limited runs.
	res := Parse(`[
  {"test_id": "TC-001", "feature": "Cart", "test_scenario": "Add item", "expected_result": "Item added", "grounded_in": "cart.md"},
]`)

	require.False(t, res.Fallback)
	require.Len(t, res.Cases, 1)
}

func TestParse_NonJSONFallsBack(t *testing.T) {
	raw := "I cannot produce JSON right now, but the checkout flow should validate discount codes."

	res := Parse(raw)

	require.True(t, res.Fallback)
	require.Len(t, res.Cases, 1)
	fb := res.Cases[0]
	assert.Equal(t, "TC-001", fb.TestID)
	assert.Equal(t, raw, fb.ExpectedResult)
	assert.NotEmpty(t, fb.Note)
}

func TestParse_EmptyArray(t *testing.T) {
	res := Parse("[]")

	require.False(t, res.Fallback)
	assert.Empty(t, res.Cases)
}

func TestBuildTestPlan_Coverage(t *testing.T) {
	res := Parse(validArray)
	require.Len(t, res.Cases, 2)

	plan := BuildTestPlan(res.Cases)

	assert.Equal(t, "TP-001", plan.TestPlanID)
	assert.Equal(t, 2, plan.TotalTestCases)
	assert.Equal(t, 1, plan.Coverage.PositiveTests)
	assert.Equal(t, 1, plan.Coverage.NegativeTests)
	assert.Equal(t, 1, plan.Coverage.HighPriority)
	assert.Equal(t, 1, plan.Coverage.MediumPriority)
	assert.Equal(t, 0, plan.Coverage.LowPriority)
}

func TestPlanQuery(t *testing.T) {
	assert.Equal(t,
		"Generate a comprehensive test plan for these features: checkout, cart",
		PlanQuery([]string{"checkout", "cart"}))
	assert.Equal(t,
		"Generate a comprehensive test plan covering all features in the application",
		PlanQuery(nil))
}
