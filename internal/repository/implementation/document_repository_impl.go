package implementation

import (
	"context"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/mapper"
	"qa-agent-be/internal/model"
	"qa-agent-be/internal/repository/contract"
	"qa-agent-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionId).
		Scopes(scope.OrderByCreatedAsc).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) DistinctSources(ctx context.Context, collectionId uuid.UUID) ([]string, error) {
	var sources []string
	err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Distinct("source").
		Where("collection_id = ?", collectionId).
		Order("source ASC").
		Pluck("source", &sources).Error
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *DocumentRepositoryImpl) DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("collection_id = ?", collectionId).
		Delete(&model.Document{}).Error
}
