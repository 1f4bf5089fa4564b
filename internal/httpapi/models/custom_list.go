package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomList struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
	IsPublic    bool    `gorm:"default:false" json:"is_public"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	MediaItems []MediaItem `gorm:"many2many:custom_list_items;constraint:OnDelete:CASCADE;" json:"media_items,omitempty"`
}

func (l *CustomList) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

func (CustomList) TableName() string {
	return "custom_lists"
}

// explicit join model so the (list, item) uniqueness constraint is migrated
type CustomListItem struct {
	CustomListID string    `gorm:"primaryKey;type:uuid;uniqueIndex:idx_list_item" json:"custom_list_id"`
	MediaItemID  string    `gorm:"primaryKey;type:uuid;uniqueIndex:idx_list_item" json:"media_item_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CustomListItem) TableName() string {
	return "custom_list_items"
}
