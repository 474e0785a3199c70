package implementation

import (
	"context"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/mapper"
	"qa-agent-be/internal/model"
	"qa-agent-be/internal/repository/contract"
	"qa-agent-be/internal/repository/scope"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) CountByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("collection_id = ?", collectionId).
		Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID, limit int) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionId).
		Scopes(scope.OrderByCreatedAsc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentChunkRepositoryImpl) DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("collection_id = ?", collectionId).
		Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) SearchSimilar(ctx context.Context, collectionId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Raw select to get the cosine distance along with each chunk.
	// pgvector's <=> operator is cosine distance (1 - cosine_similarity).
	type result struct {
		model.DocumentChunk
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, (embedding_value <=> ?) as distance", queryVector).
		Where("collection_id = ?", collectionId).
		Scopes(scope.ExcludeSoftDelete).
		Order(gorm.Expr("embedding_value <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentChunk{
			Chunk:    r.mapper.ToEntity(&res.DocumentChunk),
			Distance: res.Distance,
		}
	}
	return scored, nil
}
