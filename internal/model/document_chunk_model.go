package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkKey       string          `gorm:"type:varchar(512);not null;uniqueIndex:idx_chunk_key_collection"`
	CollectionId   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_chunk_key_collection"`
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	ChunkIndex     int             `gorm:"default:0"`        // 0-based index for ordering
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
