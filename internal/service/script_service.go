package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/repository/memory"
	"qa-agent-be/pkg/events"
	"qa-agent-be/pkg/llm"
	pktNats "qa-agent-be/pkg/nats"
	"qa-agent-be/pkg/qa/contextfmt"
	"qa-agent-be/pkg/qa/script"
	"qa-agent-be/pkg/qa/testcase"
	"qa-agent-be/pkg/store"
)

const (
	// Lower temperature keeps generated code consistent between runs.
	scriptTemperature = 0.3
	scriptMaxTokens   = 3000

	// Fallback retrieval when the caller provides no page markup.
	markupSearchQuery = "HTML structure checkout"
	markupTopK        = 3
	scriptContextTopK = 5
)

// ErrTestCaseNotFound is returned when a script request references a test id
// that is not held in the caller's session.
var ErrTestCaseNotFound = errors.New("test case not found, generate test cases first or provide one inline")

type IScriptService interface {
	Generate(ctx context.Context, sessionID string, req *dto.GenerateScriptRequest) (*dto.GenerateScriptResponse, error)
	GenerateSuite(ctx context.Context, sessionID string, req *dto.GenerateSuiteRequest) (*dto.GenerateSuiteResponse, error)
}

type scriptService struct {
	knowledgeService IKnowledgeService
	llmProvider      llm.LLMProvider
	sessionRepo      *memory.SessionRepository
	eventPublisher   *pktNats.Publisher
}

func NewScriptService(
	knowledgeService IKnowledgeService,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
) IScriptService {
	return &scriptService{
		knowledgeService: knowledgeService,
		llmProvider:      llmProvider,
		sessionRepo:      sessionRepo,
		eventPublisher:   eventPublisher,
	}
}

// resolveTestCase prefers an inline test case and falls back to the session
// store keyed by test id.
func (s *scriptService) resolveTestCase(sessionID string, req *dto.GenerateScriptRequest) (*testcase.TestCase, error) {
	if req.TestCase != nil {
		return req.TestCase, nil
	}
	if req.TestID == "" {
		return nil, ErrTestCaseNotFound
	}

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrTestCaseNotFound
	}
	tc, ok := session.FindTestCase(req.TestID)
	if !ok {
		return nil, ErrTestCaseNotFound
	}
	return tc, nil
}

func (s *scriptService) generateScript(ctx context.Context, tc *testcase.TestCase, markup string) (string, script.ValidationResult, error) {
	if markup == "" {
		// No markup supplied: recover page structure from the knowledge base.
		results, err := s.knowledgeService.Search(ctx, markupSearchQuery, markupTopK)
		if err != nil {
			return "", script.ValidationResult{}, err
		}
		parts := make([]string, len(results))
		for i, res := range results {
			parts[i] = res.Content
		}
		markup = strings.Join(parts, "\n")
	}

	// Documentation context relevant to the feature under test.
	contextResults, err := s.knowledgeService.Search(ctx, tc.Feature+" "+tc.TestScenario, scriptContextTopK)
	if err != nil {
		return "", script.ValidationResult{}, err
	}
	chunks := make([]contextfmt.Chunk, len(contextResults))
	for i, res := range contextResults {
		chunks[i] = contextfmt.Chunk{
			Source:  metaString(res.Metadata, "source"),
			Content: res.Content,
		}
	}

	prompt := script.BuildPrompt(*tc, markup, contextfmt.Format(chunks))

	raw, err := s.llmProvider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: script.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		llm.WithTemperature(scriptTemperature),
		llm.WithMaxTokens(scriptMaxTokens),
	)
	if err != nil {
		return "", script.ValidationResult{}, fmt.Errorf("error generating automation script: %w", err)
	}

	cleaned := script.Clean(raw)
	return cleaned, script.Validate(cleaned), nil
}

func (s *scriptService) Generate(ctx context.Context, sessionID string, req *dto.GenerateScriptRequest) (*dto.GenerateScriptResponse, error) {
	stats, err := s.knowledgeService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if !stats.Exists || stats.Count == 0 {
		return nil, ErrEmptyKnowledgeBase
	}

	tc, err := s.resolveTestCase(sessionID, req)
	if err != nil {
		return nil, err
	}

	cleaned, validation, err := s.generateScript(ctx, tc, req.HTMLContent)
	if err != nil {
		return nil, err
	}

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		session = &store.Session{ID: sessionID}
	}
	session.LastScript = cleaned
	s.sessionRepo.Save(session)

	evt := events.NewScriptGeneratedEvent(tc.TestID, validation.Valid)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish SCRIPT_GENERATED event: %v", err)
	}

	return &dto.GenerateScriptResponse{
		TestID:     tc.TestID,
		Script:     cleaned,
		Validation: validation,
	}, nil
}

func (s *scriptService) GenerateSuite(ctx context.Context, sessionID string, req *dto.GenerateSuiteRequest) (*dto.GenerateSuiteResponse, error) {
	stats, err := s.knowledgeService.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if !stats.Exists || stats.Count == 0 {
		return nil, ErrEmptyKnowledgeBase
	}

	scripts := make(map[string]string, len(req.TestCases))
	for i := range req.TestCases {
		tc := req.TestCases[i]
		testID := tc.TestID
		if testID == "" {
			testID = fmt.Sprintf("TC-%d", len(scripts)+1)
		}

		cleaned, _, err := s.generateScript(ctx, &tc, req.HTMLContent)
		if err != nil {
			// A single failed case must not sink the suite.
			scripts[testID] = fmt.Sprintf("// Error generating script: %v", err)
			continue
		}
		scripts[testID] = cleaned
	}

	return &dto.GenerateSuiteResponse{Scripts: scripts}, nil
}
