package contract

import (
	"context"
	"errors"

	"qa-agent-be/internal/entity"

	"github.com/google/uuid"
)

// ErrAlreadyExists is returned when a unique constraint rejects an insert.
var ErrAlreadyExists = errors.New("record already exists")

type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	FindByName(ctx context.Context, name string) (*entity.Collection, error)
	DeleteUnscoped(ctx context.Context, id uuid.UUID) error
}
