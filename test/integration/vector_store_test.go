package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/repository/contract"
	"qa-agent-be/internal/repository/unitofwork"
	"qa-agent-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const embeddingDim = 768

// makeVec builds a unit vector pointing along a single axis. Cosine distance
// between two of these is 0 for the same axis and 1 for different axes.
func makeVec(axis int) []float32 {
	vec := make([]float32, embeddingDim)
	vec[axis%embeddingDim] = 1
	return vec
}

// TestVectorStoreRoundTrip requires a running Postgres with the pgvector
// extension. Set DB_CONNECTION_STRING to run it.
func TestVectorStoreRoundTrip(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	// Unique name per run so repeated runs don't collide.
	collectionName := fmt.Sprintf("it_qa_documents_%d", time.Now().UnixNano())

	collection := &entity.Collection{
		Id:        uuid.New(),
		Name:      collectionName,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.CollectionRepository().Create(ctx, collection))

	t.Cleanup(func() {
		cleanupUow := uowFactory.NewUnitOfWork(ctx)
		_ = cleanupUow.DocumentChunkRepository().DeleteAllByCollectionIdUnscoped(ctx, collection.Id)
		_ = cleanupUow.DocumentRepository().DeleteAllByCollectionIdUnscoped(ctx, collection.Id)
		_ = cleanupUow.CollectionRepository().DeleteUnscoped(ctx, collection.Id)
	})

	// 1. Duplicate names must surface as ErrAlreadyExists
	dup := &entity.Collection{
		Id:        uuid.New(),
		Name:      collectionName,
		CreatedAt: time.Now(),
	}
	err = uow.CollectionRepository().Create(ctx, dup)
	assert.ErrorIs(t, err, contract.ErrAlreadyExists)

	found, err := uow.CollectionRepository().FindByName(ctx, collectionName)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, collection.Id, found.Id)

	// 2. Insert a document with chunks in a transaction
	document := &entity.Document{
		Id:           uuid.New(),
		CollectionId: collection.Id,
		Source:       "checkout.md",
		FileType:     ".md",
		FilePath:     "./uploaded_docs/checkout.md",
		TotalChunks:  3,
		CreatedAt:    time.Now(),
	}

	chunks := make([]*entity.DocumentChunk, 3)
	for i := range chunks {
		chunks[i] = &entity.DocumentChunk{
			Id:             uuid.New(),
			ChunkKey:       fmt.Sprintf("checkout.md_chunk_%d_%d", i, i),
			CollectionId:   collection.Id,
			DocumentId:     document.Id,
			Content:        fmt.Sprintf("chunk content %d", i),
			EmbeddingValue: makeVec(i),
			ChunkIndex:     i,
			Metadata: map[string]interface{}{
				"source":       "checkout.md",
				"chunk_index":  i,
				"total_chunks": 3,
			},
			CreatedAt: time.Now(),
		}
	}

	txUow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, txUow.Begin(ctx))
	require.NoError(t, txUow.DocumentRepository().Create(ctx, document))
	require.NoError(t, txUow.DocumentChunkRepository().CreateBulk(ctx, chunks))
	require.NoError(t, txUow.Commit())

	count, err := uow.DocumentChunkRepository().CountByCollectionId(ctx, collection.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	sources, err := uow.DocumentRepository().DistinctSources(ctx, collection.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout.md"}, sources)

	// 3. Similarity search orders by cosine distance
	results, err := uow.DocumentChunkRepository().SearchSimilar(ctx, collection.Id, makeVec(1), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "checkout.md_chunk_1_1", results[0].Chunk.ChunkKey)
	assert.InDelta(t, 0.0, results[0].Distance, 1e-4)
	assert.Greater(t, results[1].Distance, results[0].Distance)
}
