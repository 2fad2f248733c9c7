package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentPhoto describes a stored product image.
type AttachmentPhoto struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UUID        string    `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	Filename    string    `gorm:"column:filename;not null"`
	SavedName   string    `gorm:"column:saved_name;not null"`
	FilePath    string    `gorm:"column:file_path;not null"`
	ContentType string    `gorm:"column:content_type;not null"`
	Extension   string    `gorm:"column:extension;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AttachmentPhoto) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}
