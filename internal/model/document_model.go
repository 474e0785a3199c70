package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CollectionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Source       string         `gorm:"type:varchar(255);not null;index"`
	FileType     string         `gorm:"type:varchar(16);not null"`
	FilePath     string         `gorm:"type:text"`
	TotalChunks  int            `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
