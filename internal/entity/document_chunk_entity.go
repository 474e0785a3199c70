package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChunkKey       string    // e.g. "checkout.md_chunk_0_12"
	CollectionId   uuid.UUID `gorm:"type:uuid;index"`
	DocumentId     uuid.UUID `gorm:"type:uuid;index"`
	Content        string
	EmbeddingValue []float32
	ChunkIndex     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// SearchResult is a chunk scored against a query embedding. Distance is the
// cosine distance, lower is closer.
type SearchResult struct {
	Content  string
	Metadata map[string]interface{}
	Distance float64
}
