package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"qa-agent-be/pkg/llm"
)

// OpenAIProvider implements LLMProvider on top of the official chat
// completions API. It also backs any OpenAI-compatible endpoint (Groq)
// through a custom base URL.
type OpenAIProvider struct {
	client    *goopenai.Client
	modelName string
	label     string // provider name used in error messages
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    goopenai.NewClient(apiKey),
		modelName: modelName,
		label:     "openai",
	}
}

// NewCompatibleProvider targets any OpenAI-compatible endpoint (e.g. Groq at
// https://api.groq.com/openai/v1).
func NewCompatibleProvider(label, apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(cfg),
		modelName: modelName,
		label:     label,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %s chat completion failed: %v", llm.ErrUpstream, p.label, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices from %s api", llm.ErrUpstream, p.label)
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
