package service

import (
	"context"
	"log"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/repository/memory"
	"qa-agent-be/pkg/events"
	"qa-agent-be/pkg/llm"
	pktNats "qa-agent-be/pkg/nats"
	"qa-agent-be/pkg/qa/contextfmt"
	"qa-agent-be/pkg/qa/testcase"
	"qa-agent-be/pkg/store"
)

const (
	// Generation parameters for test case synthesis.
	testCaseTemperature = 0.7
	testCaseMaxTokens   = 3000

	// Whole-plan generation retrieves a wider context window.
	testPlanTopK = 10
)

var defaultSuggestions = []string{
	"Generate test cases for form validation",
	"Generate test cases for shopping cart functionality",
	"Generate test cases for discount code feature",
	"Generate test cases for payment processing",
}

var uploadedSuggestions = []string{
	"Generate all positive and negative test cases",
	"Generate test cases for all critical features",
	"Generate test cases for form validation",
	"Generate test cases for user interactions",
}

type ITestCaseService interface {
	Generate(ctx context.Context, sessionID string, req *dto.GenerateTestCasesRequest) (*dto.GenerateTestCasesResponse, error)
	SuggestScenarios(ctx context.Context) (*dto.SuggestionsResponse, error)
	GenerateTestPlan(ctx context.Context, sessionID string, req *dto.GenerateTestPlanRequest) (*testcase.TestPlan, error)
}

type testCaseService struct {
	knowledgeService IKnowledgeService
	llmProvider      llm.LLMProvider
	sessionRepo      *memory.SessionRepository
	eventPublisher   *pktNats.Publisher
	defaultTopK      int
}

func NewTestCaseService(
	knowledgeService IKnowledgeService,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	defaultTopK int,
) ITestCaseService {
	return &testCaseService{
		knowledgeService: knowledgeService,
		llmProvider:      llmProvider,
		sessionRepo:      sessionRepo,
		eventPublisher:   eventPublisher,
		defaultTopK:      defaultTopK,
	}
}

// generate runs the retrieval-augmented generation round and records the
// outcome in the session.
func (s *testCaseService) generate(ctx context.Context, sessionID string, query string, topK int) (testcase.ParseResult, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	results, err := s.knowledgeService.Search(ctx, query, topK)
	if err != nil {
		return testcase.ParseResult{}, err
	}
	if len(results) == 0 {
		// Short-circuit before any LLM round trip.
		return testcase.ParseResult{}, ErrEmptyKnowledgeBase
	}

	chunks := make([]contextfmt.Chunk, len(results))
	for i, res := range results {
		chunks[i] = contextfmt.Chunk{
			Source:  metaString(res.Metadata, "source"),
			Content: res.Content,
		}
	}

	prompt := testcase.BuildUserPrompt(query, contextfmt.Format(chunks))
	response, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: testcase.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		llm.WithTemperature(testCaseTemperature),
		llm.WithMaxTokens(testCaseMaxTokens),
	)
	if err != nil {
		return testcase.ParseResult{}, err
	}

	parsed := testcase.Parse(response)

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		session = &store.Session{ID: sessionID}
	}
	session.TestCases = parsed.Cases
	session.LastQuery = query
	s.sessionRepo.Save(session)

	evt := events.NewTestCasesGeneratedEvent(query, len(parsed.Cases), parsed.Fallback)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish TEST_CASES_GENERATED event: %v", err)
	}

	return parsed, nil
}

func (s *testCaseService) Generate(ctx context.Context, sessionID string, req *dto.GenerateTestCasesRequest) (*dto.GenerateTestCasesResponse, error) {
	parsed, err := s.generate(ctx, sessionID, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateTestCasesResponse{
		Query:     req.Query,
		TestCases: parsed.Cases,
		Count:     len(parsed.Cases),
		Fallback:  parsed.Fallback,
	}, nil
}

func (s *testCaseService) SuggestScenarios(ctx context.Context) (*dto.SuggestionsResponse, error) {
	// Sample the store only to decide which static list applies.
	chunks, err := s.knowledgeService.All(ctx, 10)
	if err != nil {
		return nil, err
	}

	if len(chunks) == 0 {
		return &dto.SuggestionsResponse{Suggestions: defaultSuggestions}, nil
	}
	return &dto.SuggestionsResponse{Suggestions: uploadedSuggestions}, nil
}

func (s *testCaseService) GenerateTestPlan(ctx context.Context, sessionID string, req *dto.GenerateTestPlanRequest) (*testcase.TestPlan, error) {
	query := testcase.PlanQuery(req.Features)

	parsed, err := s.generate(ctx, sessionID, query, testPlanTopK)
	if err != nil {
		return nil, err
	}

	plan := testcase.BuildTestPlan(parsed.Cases)
	return &plan, nil
}

func metaString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}
