package library

import (
	"encoding/json"
	"time"
)

// ItemWire is the JSON shape the server exchanges for a media item:
// flat, snake_case, nullable-heavy. Score is a json.Number because the
// server sometimes serializes decimals as strings.
type ItemWire struct {
	ID    string `json:"id"`
	MalID *int64 `json:"mal_id,omitempty"`

	Type   string `json:"type"`
	Status string `json:"status"`

	Title         string  `json:"title"`
	TitleOriginal *string `json:"title_original,omitempty"`
	CoverImage    *string `json:"cover_image,omitempty"`
	SourceURL     *string `json:"source_url,omitempty"`
	Format        *string `json:"format,omitempty"`

	CurrentEpisode float64 `json:"current_episode"`
	TotalEpisodes  float64 `json:"total_episodes"`
	CurrentChapter float64 `json:"current_chapter"`
	TotalChapters  float64 `json:"total_chapters"`
	CurrentVolume  float64 `json:"current_volume"`
	TotalVolumes   float64 `json:"total_volumes"`

	Score    json.Number `json:"score"`
	Synopsis *string     `json:"synopsis,omitempty"`
	Review   *string     `json:"review,omitempty"`
	Notes    *string     `json:"notes,omitempty"`

	Genres        []string `json:"genres"`
	Tags          []string `json:"tags"`
	UserStreaming []string `json:"user_streaming"`

	Studio      *string `json:"studio,omitempty"`
	Author      *string `json:"author,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Season      *string `json:"season,omitempty"`
	AgeRating   *string `json:"age_rating,omitempty"`

	TrailerURL   *string `json:"trailer_url,omitempty"`
	OpeningURL   *string `json:"opening_url,omitempty"`
	EndingURL    *string `json:"ending_url,omitempty"`
	BroadcastDay *string `json:"broadcast_day,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`

	RewatchCount int  `json:"rewatch_count"`
	IsFavorite   bool `json:"is_favorite"`

	CustomLists []string `json:"custom_lists"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListWire is the wire shape for a custom list.
type ListWire struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Color       *string   `json:"color,omitempty"`
	ItemIDs     []string  `json:"item_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryWire is the wire shape for a manual calendar entry.
type EntryWire struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Image     *string  `json:"image,omitempty"`
	DayOfWeek string   `json:"day_of_week"`
	Streaming []string `json:"streaming"`
	Time      *string  `json:"time,omitempty"`
}
