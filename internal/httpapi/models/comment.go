package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	MediaItemID string    `gorm:"type:uuid;not null;index" json:"media_item_id"`
	Content     string    `gorm:"not null;type:text" json:"content"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	MediaItem *MediaItem `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"media_item,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}
