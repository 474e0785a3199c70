package mapper

import (
	"encoding/json"
	"time"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		// Malformed rows degrade to nil metadata instead of failing the read.
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.DocumentChunk{
		Id:             c.Id,
		ChunkKey:       c.ChunkKey,
		CollectionId:   c.CollectionId,
		DocumentId:     c.DocumentId,
		Content:        c.Content,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		ChunkIndex:     c.ChunkIndex,
		Metadata:       metadata,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var metadata datatypes.JSON
	if c.Metadata != nil {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DocumentChunk{
		Id:             c.Id,
		ChunkKey:       c.ChunkKey,
		CollectionId:   c.CollectionId,
		DocumentId:     c.DocumentId,
		Content:        c.Content,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		ChunkIndex:     c.ChunkIndex,
		Metadata:       metadata,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
