package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider_UnknownProvider(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "bard"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider: bard")
}

func TestNewLLMProvider_OpenAIMissingKey(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "openai", ModelName: "gpt-3.5-turbo"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewLLMProvider_GroqMissingKey(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "groq", ModelName: "mixtral-8x7b-32768"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestNewLLMProvider_OllamaNeedsNoKey(t *testing.T) {
	provider, err := NewLLMProvider(Config{Provider: "ollama", ModelName: "llama2"})

	require.NoError(t, err)
	assert.NotNil(t, provider)
}
