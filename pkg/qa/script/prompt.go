// Package script generates executable chromedp automation scripts from test
// cases and validates their syntax before they are returned to the caller.
package script

import (
	"fmt"
	"strings"

	"qa-agent-be/pkg/qa/testcase"
)

const (
	// Markup and retrieved context are capped so the prompt stays inside the
	// model's token budget.
	maxMarkupLen  = 5000
	maxContextLen = 3000
)

// SystemPrompt instructs the model to produce a complete chromedp test file.
const SystemPrompt = `You are an expert test automation engineer with deep knowledge of Go and browser testing with chromedp.

Your task is to generate a complete, executable Go test script based on the provided test case and HTML structure.

CRITICAL REQUIREMENTS:
1. Use actual element IDs, names, and CSS selectors from the HTML
2. Include proper imports (context, testing, time, github.com/chromedp/chromedp)
3. Use chromedp.WaitVisible before interacting with elements
4. Include proper assertions on page state
5. Add error handling and cleanup via deferred context cancellation
6. Use the standard testing package
7. Add comments explaining each step
8. Make the script runnable as-is with "go test"
9. Run Chrome headless through chromedp.NewContext
10. Include setup and teardown

Code Quality Standards:
- Clean, readable, gofmt-compliant code
- Errors checked on every chromedp.Run call
- Meaningful variable names
- Comprehensive assertions

Output Format:
Return ONLY the complete Go script. No explanations before or after.
The script should be ready to save as a _test.go file and execute.`

// BuildPrompt assembles the generation prompt from the test case, the page
// markup and retrieved documentation context.
func BuildPrompt(tc testcase.TestCase, markup string, contextText string) string {
	if len(markup) > maxMarkupLen {
		markup = markup[:maxMarkupLen]
	}
	if len(contextText) > maxContextLen {
		contextText = contextText[:maxContextLen]
	}

	testType := tc.TestType
	if testType == "" {
		testType = "positive"
	}

	return fmt.Sprintf(`Generate a complete chromedp Go test script for this test case:

TEST CASE DETAILS:
- Test ID: %s
- Feature: %s
- Scenario: %s
- Type: %s

PRECONDITIONS:
%s

TEST STEPS:
%s

EXPECTED RESULT:
%s

---

HTML STRUCTURE (Use these exact selectors):
`+"```html\n%s\n```"+`

---

DOCUMENTATION CONTEXT:
%s

---

Generate a complete chromedp Go test script that:
1. Creates a headless Chrome context with chromedp.NewContext
2. Opens the HTML file (assume it's at ./project_assets/checkout.html)
3. Executes all test steps
4. Performs assertions to verify the expected result
5. Includes proper error handling
6. Cancels the browser context in cleanup

Use a standard Go test function with *testing.T.
Include detailed comments for each step.
Make it production-ready and executable.`,
		tc.TestID, tc.Feature, tc.TestScenario, testType,
		tc.Preconditions, formatSteps(tc.TestSteps), tc.ExpectedResult,
		markup, contextText)
}

func formatSteps(steps []string) string {
	if len(steps) == 0 {
		return "No steps provided"
	}
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, step)
	}
	return strings.Join(lines, "\n")
}
