package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider decorates an EmbeddingProvider with a Redis cache keyed by
// a hash of model and text. Cache failures are non-fatal; the wrapped
// provider is always the source of truth.
type CachedProvider struct {
	inner EmbeddingProvider
	rdb   *redis.Client
	model string
	ttl   time.Duration
}

func NewCachedProvider(inner EmbeddingProvider, rdb *redis.Client, model string, ttl time.Duration) EmbeddingProvider {
	if rdb == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		model: model,
		ttl:   ttl,
	}
}

func (c *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *CachedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if cached, ok := c.get(ctx, text); ok {
			vectors[i] = cached
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EmbedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vec := range fresh {
		vectors[missingIdx[j]] = vec
		c.set(ctx, missing[j], vec)
	}

	return vectors, nil
}

func (c *CachedProvider) key(text string) string {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return fmt.Sprintf("embedding:%s:%s", c.model, hex.EncodeToString(sum[:]))
}

func (c *CachedProvider) get(ctx context.Context, text string) ([]float32, bool) {
	raw, err := c.rdb.Get(ctx, c.key(text)).Bytes()
	if err != nil {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false
	}
	return vec, true
}

func (c *CachedProvider) set(ctx context.Context, text string, vec []float32) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	// Best effort; a write failure only costs a future cache miss.
	c.rdb.Set(ctx, c.key(text), raw, c.ttl)
}
