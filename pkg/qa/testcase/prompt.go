package testcase

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the model to produce grounded test cases as a JSON
// array matching the TestCase schema.
const SystemPrompt = `You are an expert QA engineer specializing in test case design.

Your task is to generate comprehensive, well-structured test cases based STRICTLY on the provided documentation.

CRITICAL RULES:
1. ALL test cases MUST be grounded in the provided documentation
2. Reference the source document for each test case
3. Do NOT invent features, behaviors, or requirements not in the documentation
4. If information is missing, state it explicitly
5. Generate both positive and negative test cases where applicable

Output Format:
Return ONLY a valid JSON array of test cases. Each test case must have this exact structure:
{
  "test_id": "TC-XXX",
  "feature": "Feature name",
  "test_scenario": "Clear description of what is being tested",
  "test_type": "positive" or "negative",
  "preconditions": "Prerequisites before test execution",
  "test_steps": ["Step 1", "Step 2", "Step 3"],
  "expected_result": "What should happen",
  "grounded_in": "source_document.ext",
  "priority": "high", "medium", or "low"
}

Generate multiple comprehensive test cases covering different aspects of the feature.`

// BuildUserPrompt embeds the retrieved context ahead of the user query and
// pins the model to it.
func BuildUserPrompt(query string, contextText string) string {
	return fmt.Sprintf(`Context from documentation:

%s

---

User Query: %s

Based STRICTLY on the provided context above, generate your response. Do not include any information that is not explicitly mentioned in the context.`, contextText, query)
}

// PlanQuery builds the retrieval query used for whole-plan generation.
func PlanQuery(features []string) string {
	if len(features) > 0 {
		return fmt.Sprintf("Generate a comprehensive test plan for these features: %s", strings.Join(features, ", "))
	}
	return "Generate a comprehensive test plan covering all features in the application"
}
