package contract

import (
	"context"

	"qa-agent-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps a chunk with its cosine distance to the query
// vector. Lower distance means higher relevance.
type ScoredDocumentChunk struct {
	Chunk    *entity.DocumentChunk
	Distance float64
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	CountByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error)
	FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID, limit int) ([]*entity.DocumentChunk, error)
	DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error
	// Advanced
	SearchSimilar(ctx context.Context, collectionId uuid.UUID, embedding []float32, limit int) ([]*ScoredDocumentChunk, error)
}
