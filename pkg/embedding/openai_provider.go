package embedding

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements EmbeddingProvider using the OpenAI embeddings API
type OpenAIProvider struct {
	client *goopenai.Client
	model  string
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = string(goopenai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Model: goopenai.EmbeddingModel(p.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding error: expected %d vectors, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		// OpenAI embeddings are already unit length; normalization keeps the
		// invariant explicit regardless of backend.
		vectors[item.Index] = normalizeVector(item.Embedding)
	}

	return vectors, nil
}
