package service

import (
	"context"
	"strings"
	"testing"

	"qa-agent-be/pkg/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKnowledgeService(t *testing.T) (IKnowledgeService, *fakeEmbedder, *fakePublisher) {
	t.Helper()
	embedder := &fakeEmbedder{}
	publisher := &fakePublisher{}
	svc := NewKnowledgeService(newFakeUowFactory(), publisher, embedder, nil, 1000, 200)
	return svc, embedder, publisher
}

func testDocument(content string) *extract.Document {
	return &extract.Document{
		Content: content,
		Source:  "checkout.md",
		Metadata: map[string]interface{}{
			"source":    "checkout.md",
			"file_type": ".md",
			"file_path": "./uploaded_docs/checkout.md",
		},
	}
}

func TestKnowledgeService_IngestChunksAndCounts(t *testing.T) {
	svc, embedder, publisher := newTestKnowledgeService(t)
	ctx := context.Background()

	// 2400 chars with no break markers: hard cuts at 1000 with 200 overlap
	// produce exactly three chunks.
	content := strings.Repeat("a", 2400)

	created, err := svc.Ingest(ctx, testDocument(content))

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	// All chunk texts go to the provider in one batched call.
	assert.Equal(t, 1, embedder.calls)
	assert.Len(t, publisher.payloads, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.Exists)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, []string{"checkout.md"}, stats.UploadedFiles)
}

func TestKnowledgeService_ReingestKeepsKeysDistinct(t *testing.T) {
	svc, _, _ := newTestKnowledgeService(t)
	ctx := context.Background()
	doc := testDocument(strings.Repeat("a", 2400))

	_, err := svc.Ingest(ctx, doc)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, doc)
	require.NoError(t, err)

	chunks, err := svc.All(ctx, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 6)

	keys := make(map[string]bool)
	for _, c := range chunks {
		assert.False(t, keys[c.ChunkKey], "duplicate chunk key %s", c.ChunkKey)
		keys[c.ChunkKey] = true
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.Count)
	// Same source twice still reports one uploaded file.
	assert.Equal(t, []string{"checkout.md"}, stats.UploadedFiles)
}

func TestKnowledgeService_ChunkMetadata(t *testing.T) {
	svc, _, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	chunks, err := svc.All(ctx, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	chunk := chunks[0]
	assert.Equal(t, "checkout.md_chunk_0_0", chunk.ChunkKey)
	assert.Equal(t, "checkout.md", chunk.Metadata["source"])
	assert.Equal(t, ".md", chunk.Metadata["file_type"])
	assert.Equal(t, 0, chunk.Metadata["chunk_index"])
	assert.Equal(t, 1, chunk.Metadata["total_chunks"])
}

func TestKnowledgeService_SearchWithoutCollection(t *testing.T) {
	svc, _, _ := newTestKnowledgeService(t)

	results, err := svc.Search(context.Background(), "discount codes", 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKnowledgeService_SearchReturnsScoredResults(t *testing.T) {
	svc, _, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, testDocument("The checkout form has a discount field."))
	require.NoError(t, err)

	results, err := svc.Search(ctx, "discount", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The checkout form has a discount field.", results[0].Content)
	assert.Equal(t, "checkout.md", results[0].Metadata["source"])
	assert.InDelta(t, 0.0, results[0].Distance, 1e-6)
}

func TestKnowledgeService_Reset(t *testing.T) {
	svc, _, _ := newTestKnowledgeService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, testDocument(strings.Repeat("a", 2400)))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.Exists)
	assert.Equal(t, int64(0), stats.Count)

	// Resetting an already empty store is a no-op.
	require.NoError(t, svc.Reset(ctx))
}
