package factory

import (
	"fmt"

	"qa-agent-be/pkg/llm"
	"qa-agent-be/pkg/llm/ollama"
	"qa-agent-be/pkg/llm/openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Config carries the provider selection and credentials resolved from the
// environment. Exactly one provider is active per process.
type Config struct {
	Provider     string // "openai", "groq" or "ollama"
	OpenAIAPIKey string
	GroqAPIKey   string
	ModelName    string
	BaseURL      string // ollama only
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("llm provider %q selected but OPENAI_API_KEY is not set", cfg.Provider)
		}
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.ModelName), nil
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("llm provider %q selected but GROQ_API_KEY is not set", cfg.Provider)
		}
		return openai.NewCompatibleProvider("groq", cfg.GroqAPIKey, groqBaseURL, cfg.ModelName), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
