package service

import (
	"context"
	"testing"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCaseJSON = `[
  {
    "test_id": "TC-001",
    "feature": "Discount Code",
    "test_scenario": "Apply a valid discount code",
    "test_type": "positive",
    "test_steps": ["Open checkout", "Enter SAVE10"],
    "expected_result": "Total is reduced",
    "grounded_in": "checkout.md",
    "priority": "high"
  },
  {
    "test_id": "TC-002",
    "feature": "Discount Code",
    "test_scenario": "Apply an expired code",
    "test_type": "negative",
    "expected_result": "Error message shown",
    "grounded_in": "checkout.md",
    "priority": "low"
  }
]`

type testCaseHarness struct {
	svc         ITestCaseService
	knowledge   IKnowledgeService
	llmProvider *fakeLLM
	sessions    *memory.SessionRepository
}

func newTestCaseHarness(t *testing.T, llmResponse string) *testCaseHarness {
	t.Helper()
	knowledge := NewKnowledgeService(newFakeUowFactory(), &fakePublisher{}, &fakeEmbedder{}, nil, 1000, 200)
	llmProvider := &fakeLLM{response: llmResponse}
	sessions := memory.NewSessionRepository()
	svc := NewTestCaseService(knowledge, llmProvider, sessions, nil, 5)
	return &testCaseHarness{
		svc:         svc,
		knowledge:   knowledge,
		llmProvider: llmProvider,
		sessions:    sessions,
	}
}

func TestTestCaseService_EmptyKnowledgeBaseShortCircuits(t *testing.T) {
	h := newTestCaseHarness(t, testCaseJSON)

	_, err := h.svc.Generate(context.Background(), "session-1", &dto.GenerateTestCasesRequest{
		Query: "Generate discount code tests",
	})

	require.ErrorIs(t, err, ErrEmptyKnowledgeBase)
	// The LLM must never be consulted without retrieved context.
	assert.Equal(t, 0, h.llmProvider.callCount())
}

func TestTestCaseService_GenerateParsesAndStoresSession(t *testing.T) {
	h := newTestCaseHarness(t, testCaseJSON)
	ctx := context.Background()

	_, err := h.knowledge.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	res, err := h.svc.Generate(ctx, "session-1", &dto.GenerateTestCasesRequest{
		Query: "Generate discount code tests",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.False(t, res.Fallback)
	assert.Equal(t, "TC-001", res.TestCases[0].TestID)
	assert.Equal(t, 1, h.llmProvider.callCount())

	session, found := h.sessions.Get("session-1")
	require.True(t, found)
	assert.Len(t, session.TestCases, 2)
	assert.Equal(t, "Generate discount code tests", session.LastQuery)
}

func TestTestCaseService_NonJSONResponseFallsBack(t *testing.T) {
	h := newTestCaseHarness(t, "I could not produce structured output.")
	ctx := context.Background()

	_, err := h.knowledge.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	res, err := h.svc.Generate(ctx, "session-1", &dto.GenerateTestCasesRequest{Query: "discount tests"})

	require.NoError(t, err)
	assert.True(t, res.Fallback)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "I could not produce structured output.", res.TestCases[0].ExpectedResult)
}

func TestTestCaseService_SuggestScenarios(t *testing.T) {
	h := newTestCaseHarness(t, testCaseJSON)
	ctx := context.Background()

	res, err := h.svc.SuggestScenarios(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultSuggestions, res.Suggestions)

	_, err = h.knowledge.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	res, err = h.svc.SuggestScenarios(ctx)
	require.NoError(t, err)
	assert.Equal(t, uploadedSuggestions, res.Suggestions)
}

func TestTestCaseService_GenerateTestPlan(t *testing.T) {
	h := newTestCaseHarness(t, testCaseJSON)
	ctx := context.Background()

	_, err := h.knowledge.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	plan, err := h.svc.GenerateTestPlan(ctx, "session-1", &dto.GenerateTestPlanRequest{
		Features: []string{"discount code"},
	})

	require.NoError(t, err)
	assert.Equal(t, "TP-001", plan.TestPlanID)
	assert.Equal(t, 2, plan.TotalTestCases)
	assert.Equal(t, 1, plan.Coverage.PositiveTests)
	assert.Equal(t, 1, plan.Coverage.NegativeTests)
	assert.Equal(t, 1, plan.Coverage.HighPriority)
	assert.Equal(t, 1, plan.Coverage.LowPriority)
}
