package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser represents the back-office operator profile.
type AdminUser struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UUID      string    `gorm:"column:uuid;type:text;not null;uniqueIndex"`
	Firstname string    `gorm:"column:firstname;not null"`
	Lastname  string    `gorm:"column:lastname;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	User      *User     `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	return nil
}
