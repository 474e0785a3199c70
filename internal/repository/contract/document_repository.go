package contract

import (
	"context"

	"qa-agent-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	FindAllByCollectionId(ctx context.Context, collectionId uuid.UUID) ([]*entity.Document, error)
	DistinctSources(ctx context.Context, collectionId uuid.UUID) ([]string, error)
	DeleteAllByCollectionIdUnscoped(ctx context.Context, collectionId uuid.UUID) error
}
