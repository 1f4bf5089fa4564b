package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	MediaItemID string    `gorm:"type:uuid;not null;index" json:"media_item_id"`
	Rating      int       `gorm:"not null;check:rating >= 0 AND rating <= 100" json:"rating"`
	Content     *string   `gorm:"type:text" json:"content,omitempty"`
	Spoilers    bool      `gorm:"default:false" json:"spoilers"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	MediaItem *MediaItem `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"media_item,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Review) TableName() string {
	return "reviews"
}
