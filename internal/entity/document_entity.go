package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CollectionId uuid.UUID `gorm:"type:uuid;index"`
	Source       string
	FileType     string
	FilePath     string
	TotalChunks  int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
