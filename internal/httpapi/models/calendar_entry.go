package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarEntry is a user-curated weekly release reminder, independent of
// the library. DayOfWeek holds a lowercase English weekday name.
type CalendarEntry struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string      `gorm:"not null" json:"title"`
	Image     *string     `json:"image,omitempty"`
	DayOfWeek string      `gorm:"not null;index" json:"day_of_week"`
	Streaming StringArray `gorm:"type:jsonb;default:'[]'" json:"streaming"`
	Time      *string     `json:"time,omitempty"` // HH:MM

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (e *CalendarEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}

func (CalendarEntry) TableName() string {
	return "calendar_entries"
}
