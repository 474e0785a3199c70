package implementation

import (
	"context"
	"errors"

	"qa-agent-be/internal/entity"
	"qa-agent-be/internal/mapper"
	"qa-agent-be/internal/model"
	"qa-agent-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

type CollectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CollectionMapper
}

func NewCollectionRepository(db *gorm.DB) contract.CollectionRepository {
	return &CollectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewCollectionMapper(),
	}
}

func (r *CollectionRepositoryImpl) Create(ctx context.Context, collection *entity.Collection) error {
	m := r.mapper.ToModel(collection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return contract.ErrAlreadyExists
		}
		return err
	}
	*collection = *r.mapper.ToEntity(m)
	return nil
}

func (r *CollectionRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Collection, error) {
	var m model.Collection
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CollectionRepositoryImpl) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Collection{}, id).Error
}
