package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaItem is one tracked work (anime, manga or manhwa) in a user's library.
// Progress counters are decimals so split episodes ("12.5") can be tracked.
// total = 0 is the sentinel for an unknown total.
type MediaItem struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	MalID  *int64 `gorm:"index" json:"mal_id,omitempty"`

	Title         string  `gorm:"not null" json:"title"`
	TitleOriginal *string `json:"title_original,omitempty"`
	SourceURL     *string `json:"source_url,omitempty"`
	Type          string  `gorm:"not null;index" json:"type"`
	Format        *string `json:"format,omitempty"`
	Status        string  `gorm:"not null;index" json:"status"`

	CoverImage      string  `gorm:"not null" json:"cover_image"`
	CoverImageLarge *string `json:"cover_image_large,omitempty"`
	BannerImage     *string `json:"banner_image,omitempty"`

	Score          float64 `gorm:"type:decimal(4,2);default:0" json:"score"`
	CurrentEpisode float64 `gorm:"type:decimal(7,2);default:0" json:"current_episode"`
	TotalEpisodes  float64 `gorm:"type:decimal(7,2);default:0" json:"total_episodes"`
	CurrentChapter float64 `gorm:"type:decimal(7,2);default:0" json:"current_chapter"`
	TotalChapters  float64 `gorm:"type:decimal(7,2);default:0" json:"total_chapters"`
	CurrentVolume  float64 `gorm:"type:decimal(7,2);default:0" json:"current_volume"`
	TotalVolumes   float64 `gorm:"type:decimal(7,2);default:0" json:"total_volumes"`

	Synopsis string `gorm:"type:text" json:"synopsis"`
	Review   string `gorm:"type:text" json:"review"`
	Notes    string `gorm:"type:text" json:"notes"`

	Genres        StringArray `gorm:"type:jsonb;default:'[]'" json:"genres"`
	Tags          StringArray `gorm:"type:jsonb;default:'[]'" json:"tags"`
	UserStreaming StringArray `gorm:"type:jsonb;default:'[]'" json:"user_streaming"`

	Studio      *string `json:"studio,omitempty"`
	Author      *string `json:"author,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Season      *string `json:"season,omitempty"`
	AgeRating   *string `json:"age_rating,omitempty"`

	TrailerURL   *string `json:"trailer_url,omitempty"`
	OpeningURL   *string `json:"opening_url,omitempty"`
	EndingURL    *string `json:"ending_url,omitempty"`
	BroadcastDay *string `json:"broadcast_day,omitempty"`
	StartDate    *string `gorm:"type:date" json:"start_date,omitempty"`
	EndDate      *string `gorm:"type:date" json:"end_date,omitempty"`

	RewatchCount int  `gorm:"default:0" json:"rewatch_count"`
	IsFavorite   bool `gorm:"default:false" json:"is_favorite"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
	Reviews     []Review     `gorm:"foreignKey:MediaItemID;constraint:OnDelete:CASCADE;" json:"reviews,omitempty"`
	CustomLists []CustomList `gorm:"many2many:custom_list_items;constraint:OnDelete:CASCADE;" json:"custom_lists,omitempty"`
}

func (m *MediaItem) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (MediaItem) TableName() string {
	return "media_items"
}
